package expense

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"orgflow/config"
	expenseRepo "orgflow/database/repository/expense"
	"orgflow/models"
	"orgflow/services/approval"
	"orgflow/services/employee"
	"orgflow/services/notification"
	"orgflow/services/tasks"
	"orgflow/utils"

	"go.uber.org/zap"
)

// RecordType is the approval routing key for expense claims.
const RecordType = "expense"

// DefaultExpenseService is the production implementation.
type DefaultExpenseService struct {
	Repo         expenseRepo.ExpenseRepository
	Employees    employee.EmployeeService
	Notification notification.NotificationService
	Reminders    tasks.ReminderScheduler
}

// Submit creates a pending expense routed to the requester's approver and
// fires the approval notification fan-out.
func (s *DefaultExpenseService) Submit(ctx context.Context, employeeID string, input SubmitExpenseInput) (*models.Expense, *notification.DeliveryReport, error) {
	if input.Amount <= 0 {
		return nil, nil, errors.New("amount must be positive")
	}
	if input.Currency == "" {
		input.Currency = "₹"
	}

	requester, err := s.Employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load requester: %w", err)
	}
	approver, err := s.Employees.ResolveApprover(ctx, requester)
	if err != nil {
		return nil, nil, err
	}

	e := models.Expense{
		EmployeeID:  requester.ID,
		Category:    input.Category,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Description: input.Description,
		ReceiptURL:  input.ReceiptURL,
		Status:      models.StatusPending,
		ApproverID:  approver.ID,
	}
	id, err := s.Repo.Create(ctx, e)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create expense: %w", err)
	}
	e.ID = id

	report, err := s.Notification.SendApprovalRequest(ctx, notification.ApprovalRequest{
		RecordType: RecordType,
		RecordID:   id,
		Requester:  models.Party{ID: requester.ID, Name: requester.Name, Email: requester.Email},
		Approver:   models.Party{ID: approver.ID, Name: approver.Name, Email: approver.Email},
		Details: map[string]string{
			"category": input.Category,
			"amount":   strconv.FormatInt(input.Amount, 10),
		},
		Note: input.Description,
	})
	if err != nil {
		return &e, nil, err
	}

	s.scheduleReminder(ctx, id, approver.ID, requester.Name)

	return &e, report, nil
}

func (s *DefaultExpenseService) scheduleReminder(ctx context.Context, recordID, approverID, requesterName string) {
	if s.Reminders == nil {
		return
	}
	delay := time.Duration(config.AppConfig.ApprovalReminderHours) * time.Hour
	err := s.Reminders.ScheduleApprovalReminder(ctx, models.ReminderPayload{
		RecordType: RecordType,
		RecordID:   recordID,
		ApproverID: approverID,
		Title:      "Expense still pending",
		Body:       fmt.Sprintf("%s's expense claim is still waiting for your approval", requesterName),
	}, time.Now().Add(delay))
	if err != nil {
		utils.GetLogger().Warn("failed to schedule approval reminder",
			zap.String("recordId", recordID), zap.Error(err))
	}
}

// GetByID returns an expense.
func (s *DefaultExpenseService) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListMine returns the employee's own expenses.
func (s *DefaultExpenseService) ListMine(ctx context.Context, employeeID string) ([]models.Expense, error) {
	return s.Repo.ListByEmployee(ctx, employeeID)
}

// ListPendingForApprover returns expenses waiting on the approver.
func (s *DefaultExpenseService) ListPendingForApprover(ctx context.Context, approverID string) ([]models.Expense, error) {
	return s.Repo.ListPendingForApprover(ctx, approverID)
}

// Approve transitions a pending expense to approved.
func (s *DefaultExpenseService) Approve(ctx context.Context, id string, actor *models.Employee) (*models.Expense, error) {
	return s.decide(ctx, id, actor, models.StatusApproved, "")
}

// Reject transitions a pending expense to rejected with a reason.
func (s *DefaultExpenseService) Reject(ctx context.Context, id string, actor *models.Employee, reason string) (*models.Expense, error) {
	return s.decide(ctx, id, actor, models.StatusRejected, reason)
}

func (s *DefaultExpenseService) decide(ctx context.Context, id string, actor *models.Employee, outcome, reason string) (*models.Expense, error) {
	logger := utils.GetLogger()

	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("expense not found: %w", err)
	}

	if err := approval.GuardSelfApproval(e.EmployeeID, actor.ID); err != nil {
		return nil, err
	}
	if actor.ID != e.ApproverID && actor.Role != models.RoleAdmin {
		return nil, &approval.NotApproverError{ActorID: actor.ID}
	}
	if err := approval.Transition(e.Status, outcome); err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateStatus(ctx, id, e.Status, outcome, reason); err != nil {
		return nil, err
	}
	e.Status = outcome
	e.RejectionReason = reason

	requester, err := s.Employees.GetByID(ctx, e.EmployeeID)
	if err != nil {
		logger.Warn("failed to load requester for outcome notification",
			zap.String("employeeId", e.EmployeeID), zap.Error(err))
		return e, nil
	}
	if _, err := s.Notification.SendApprovalOutcome(ctx, notification.ApprovalOutcome{
		RecordType: RecordType,
		RecordID:   id,
		Requester:  models.Party{ID: requester.ID, Name: requester.Name, Email: requester.Email},
		Approver:   models.Party{ID: actor.ID, Name: actor.Name, Email: actor.Email},
		Outcome:    outcome,
		Reason:     reason,
	}); err != nil {
		logger.Warn("failed to notify requester of expense outcome",
			zap.String("recordId", id), zap.Error(err))
	}

	return e, nil
}

// ExecuteEmailAction performs a one-click approve/reject on behalf of the
// email recipient.
func (s *DefaultExpenseService) ExecuteEmailAction(ctx context.Context, recordID, action, recipientEmail string) error {
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
