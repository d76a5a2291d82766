package leaveRepo

import (
	"context"

	"orgflow/models"
)

// LeaveRepository is the persistence contract for leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, lr models.LeaveRequest) (string, error)
	GetByID(ctx context.Context, id string) (*models.LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]models.LeaveRequest, error)
	ListPendingForApprover(ctx context.Context, approverID string) ([]models.LeaveRequest, error)
	ListPending(ctx context.Context) ([]models.LeaveRequest, error)
	// UpdateStatus is a conditional single-document write: it only applies
	// when the record is still in the expected current status.
	UpdateStatus(ctx context.Context, id, from, to, rejectionReason string) error
}
