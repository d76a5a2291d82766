package expenseRepo

import (
	"context"

	"orgflow/models"
)

// ExpenseRepository is the persistence contract for expense claims.
type ExpenseRepository interface {
	Create(ctx context.Context, e models.Expense) (string, error)
	GetByID(ctx context.Context, id string) (*models.Expense, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]models.Expense, error)
	ListPendingForApprover(ctx context.Context, approverID string) ([]models.Expense, error)
	ListPending(ctx context.Context) ([]models.Expense, error)
	UpdateStatus(ctx context.Context, id, from, to, rejectionReason string) error
}
