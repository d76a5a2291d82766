package leave

import (
	"context"

	"orgflow/models"
	"orgflow/services/notification"
)

// SubmitLeaveInput is the payload for a new leave request.
type SubmitLeaveInput struct {
	LeaveType string  `json:"leaveType" binding:"required"`
	FromDate  string  `json:"fromDate" binding:"required"`
	ToDate    string  `json:"toDate" binding:"required"`
	Days      float64 `json:"days" binding:"required"`
	Reason    string  `json:"reason"`
}

// LeaveService owns the leave request lifecycle: submission into the
// approval workflow, approver queries, and the approve/reject transitions.
type LeaveService interface {
	Submit(ctx context.Context, employeeID string, input SubmitLeaveInput) (*models.LeaveRequest, *notification.DeliveryReport, error)
	GetByID(ctx context.Context, id string) (*models.LeaveRequest, error)
	ListMine(ctx context.Context, employeeID string) ([]models.LeaveRequest, error)
	ListPendingForApprover(ctx context.Context, approverID string) ([]models.LeaveRequest, error)
	Approve(ctx context.Context, id string, actor *models.Employee) (*models.LeaveRequest, error)
	Reject(ctx context.Context, id string, actor *models.Employee, reason string) (*models.LeaveRequest, error)
	// ExecuteEmailAction satisfies approval.EmailActioner for one-click links.
	ExecuteEmailAction(ctx context.Context, recordID, action, recipientEmail string) error
}
