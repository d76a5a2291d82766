package expense

import (
	"context"

	"orgflow/models"
	"orgflow/services/notification"
)

// SubmitExpenseInput is the payload for a new expense claim.
type SubmitExpenseInput struct {
	Category    string `json:"category" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	ReceiptURL  string `json:"receiptUrl"`
}

// ExpenseService owns the expense claim lifecycle inside the approval
// workflow.
type ExpenseService interface {
	Submit(ctx context.Context, employeeID string, input SubmitExpenseInput) (*models.Expense, *notification.DeliveryReport, error)
	GetByID(ctx context.Context, id string) (*models.Expense, error)
	ListMine(ctx context.Context, employeeID string) ([]models.Expense, error)
	ListPendingForApprover(ctx context.Context, approverID string) ([]models.Expense, error)
	Approve(ctx context.Context, id string, actor *models.Employee) (*models.Expense, error)
	Reject(ctx context.Context, id string, actor *models.Employee, reason string) (*models.Expense, error)
	ExecuteEmailAction(ctx context.Context, recordID, action, recipientEmail string) error
}
