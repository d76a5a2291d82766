package models

import "time"

// LeaveRequest is an approvable HR record. Status is drawn from the shared
// approval statuses; the workflow only ever touches status plus the display
// fields surfaced in notifications.
type LeaveRequest struct {
	ID              string    `bson:"id" json:"id"`
	EmployeeID      string    `bson:"employeeId" json:"employeeId"`
	LeaveType       string    `bson:"leaveType" json:"leaveType"` // e.g. "casual", "sick", "earned"
	FromDate        string    `bson:"fromDate" json:"fromDate"`   // "YYYY-MM-DD"
	ToDate          string    `bson:"toDate" json:"toDate"`
	Days            float64   `bson:"days" json:"days"`
	Reason          string    `bson:"reason,omitempty" json:"reason,omitempty"`
	Status          string    `bson:"status" json:"status"`
	ApproverID      string    `bson:"approverId" json:"approverId"`
	RejectionReason string    `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}
