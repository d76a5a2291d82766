package models

import "time"

// Expense is an approvable reimbursement record. Amount is kept as entered
// (whole currency units) and rendered with the currency symbol in
// notifications and email subjects.
type Expense struct {
	ID              string    `bson:"id" json:"id"`
	EmployeeID      string    `bson:"employeeId" json:"employeeId"`
	Category        string    `bson:"category" json:"category"` // e.g. "travel", "meals", "equipment"
	Amount          int64     `bson:"amount" json:"amount"`
	Currency        string    `bson:"currency" json:"currency"` // symbol, default "₹"
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	ReceiptURL      string    `bson:"receiptUrl,omitempty" json:"receiptUrl,omitempty"`
	Status          string    `bson:"status" json:"status"`
	ApproverID      string    `bson:"approverId" json:"approverId"`
	RejectionReason string    `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}
