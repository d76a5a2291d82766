package leave

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"orgflow/config"
	leaveRepo "orgflow/database/repository/leave"
	"orgflow/models"
	"orgflow/services/approval"
	"orgflow/services/employee"
	"orgflow/services/notification"
	"orgflow/services/tasks"
	"orgflow/utils"

	"go.uber.org/zap"
)

// RecordType is the approval routing key for leave requests.
const RecordType = "leave_request"

// DefaultLeaveService is the production implementation.
type DefaultLeaveService struct {
	Repo         leaveRepo.LeaveRepository
	Employees    employee.EmployeeService
	Notification notification.NotificationService
	Reminders    tasks.ReminderScheduler
}

// Submit creates a pending leave request routed to the requester's approver
// and fires the approval notification fan-out. The record stays pending even
// if every delivery channel fails; only a failed notification insert is
// surfaced, and even then the record is not rolled back.
func (s *DefaultLeaveService) Submit(ctx context.Context, employeeID string, input SubmitLeaveInput) (*models.LeaveRequest, *notification.DeliveryReport, error) {
	_ = utils.GetLogger()

	if input.Days <= 0 {
		return nil, nil, errors.New("days must be positive")
	}

	requester, err := s.Employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load requester: %w", err)
	}
	approver, err := s.Employees.ResolveApprover(ctx, requester)
	if err != nil {
		return nil, nil, err
	}

	lr := models.LeaveRequest{
		EmployeeID: requester.ID,
		LeaveType:  input.LeaveType,
		FromDate:   input.FromDate,
		ToDate:     input.ToDate,
		Days:       input.Days,
		Reason:     input.Reason,
		Status:     models.StatusPending,
		ApproverID: approver.ID,
	}
	id, err := s.Repo.Create(ctx, lr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create leave request: %w", err)
	}
	lr.ID = id

	report, err := s.Notification.SendApprovalRequest(ctx, notification.ApprovalRequest{
		RecordType: RecordType,
		RecordID:   id,
		Requester:  models.Party{ID: requester.ID, Name: requester.Name, Email: requester.Email},
		Approver:   models.Party{ID: approver.ID, Name: approver.Name, Email: approver.Email},
		Details: map[string]string{
			"leave_type": input.LeaveType,
			"from_date":  input.FromDate,
			"to_date":    input.ToDate,
			"days":       strconv.FormatFloat(input.Days, 'f', -1, 64),
		},
		Note: input.Reason,
	})
	if err != nil {
		// The record already transitioned to pending; that stands.
		return &lr, nil, err
	}

	s.scheduleReminder(ctx, id, approver.ID, requester.Name)

	return &lr, report, nil
}

// scheduleReminder enqueues a delayed nudge for the approver; best-effort.
func (s *DefaultLeaveService) scheduleReminder(ctx context.Context, recordID, approverID, requesterName string) {
	if s.Reminders == nil {
		return
	}
	delay := time.Duration(config.AppConfig.ApprovalReminderHours) * time.Hour
	err := s.Reminders.ScheduleApprovalReminder(ctx, models.ReminderPayload{
		RecordType: RecordType,
		RecordID:   recordID,
		ApproverID: approverID,
		Title:      "Leave request still pending",
		Body:       fmt.Sprintf("%s's leave request is still waiting for your approval", requesterName),
	}, time.Now().Add(delay))
	if err != nil {
		utils.GetLogger().Warn("failed to schedule approval reminder",
			zap.String("recordId", recordID), zap.Error(err))
	}
}

// GetByID returns a leave request.
func (s *DefaultLeaveService) GetByID(ctx context.Context, id string) (*models.LeaveRequest, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListMine returns the employee's own leave requests.
func (s *DefaultLeaveService) ListMine(ctx context.Context, employeeID string) ([]models.LeaveRequest, error) {
	return s.Repo.ListByEmployee(ctx, employeeID)
}

// ListPendingForApprover returns leave requests waiting on the approver.
func (s *DefaultLeaveService) ListPendingForApprover(ctx context.Context, approverID string) ([]models.LeaveRequest, error) {
	return s.Repo.ListPendingForApprover(ctx, approverID)
}

// Approve transitions a pending leave request to approved.
func (s *DefaultLeaveService) Approve(ctx context.Context, id string, actor *models.Employee) (*models.LeaveRequest, error) {
	return s.decide(ctx, id, actor, models.StatusApproved, "")
}

// Reject transitions a pending leave request to rejected with a reason.
func (s *DefaultLeaveService) Reject(ctx context.Context, id string, actor *models.Employee, reason string) (*models.LeaveRequest, error) {
	return s.decide(ctx, id, actor, models.StatusRejected, reason)
}

// decide runs the shared approval checks, applies the conditional status
// write, then notifies the requester of the outcome. There is no transaction
// around the write and the notification; a crash in between leaves the
// record decided with no outcome notification.
func (s *DefaultLeaveService) decide(ctx context.Context, id string, actor *models.Employee, outcome, reason string) (*models.LeaveRequest, error) {
	logger := utils.GetLogger()

	lr, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("leave request not found: %w", err)
	}

	if err := approval.GuardSelfApproval(lr.EmployeeID, actor.ID); err != nil {
		return nil, err
	}
	if actor.ID != lr.ApproverID && actor.Role != models.RoleAdmin {
		return nil, &approval.NotApproverError{ActorID: actor.ID}
	}
	if err := approval.Transition(lr.Status, outcome); err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateStatus(ctx, id, lr.Status, outcome, reason); err != nil {
		return nil, err
	}
	lr.Status = outcome
	lr.RejectionReason = reason

	requester, err := s.Employees.GetByID(ctx, lr.EmployeeID)
	if err != nil {
		logger.Warn("failed to load requester for outcome notification",
			zap.String("employeeId", lr.EmployeeID), zap.Error(err))
		return lr, nil
	}
	if _, err := s.Notification.SendApprovalOutcome(ctx, notification.ApprovalOutcome{
		RecordType: RecordType,
		RecordID:   id,
		Requester:  models.Party{ID: requester.ID, Name: requester.Name, Email: requester.Email},
		Approver:   models.Party{ID: actor.ID, Name: actor.Name, Email: actor.Email},
		Outcome:    outcome,
		Reason:     reason,
	}); err != nil {
		logger.Warn("failed to notify requester of leave outcome",
			zap.String("recordId", id), zap.Error(err))
	}

	return lr, nil
}

// ExecuteEmailAction performs a one-click approve/reject on behalf of the
// email recipient. The recipient email identifies the actor; the same guard
// and transition checks apply as on the REST endpoints.
func (s *DefaultLeaveService) ExecuteEmailAction(ctx context.Context, recordID, action, recipientEmail string) error {
	actor, err := s.Employees.GetByEmail(ctx, recipientEmail)
	if err != nil {
		return fmt.Errorf("unknown email action recipient %s: %w", recipientEmail, err)
	}

	switch action {
	case models.EmailActionApprove:
		_, err = s.Approve(ctx, recordID, actor)
	case models.EmailActionReject:
		_, err = s.Reject(ctx, recordID, actor, "Rejected via email")
	default:
		err = fmt.Errorf("unknown email action %q", action)
	}
	return err
}
