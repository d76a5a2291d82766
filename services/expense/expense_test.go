package expense

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	expenseRepo "orgflow/database/repository/expense"
	"orgflow/models"
	"orgflow/services/approval"
	"orgflow/services/employee"
	"orgflow/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeExpenseRepo struct {
	records map[string]*models.Expense
	nextID  int
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{records: map[string]*models.Expense{}}
}

func (f *fakeExpenseRepo) Create(ctx context.Context, e models.Expense) (string, error) {
	f.nextID++
	e.ID = fmt.Sprintf("exp-%d", f.nextID)
	f.records[e.ID] = &e
	return e.ID, nil
}

func (f *fakeExpenseRepo) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	e, ok := f.records[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *e
	return &copied, nil
}

func (f *fakeExpenseRepo) ListByEmployee(ctx context.Context, employeeID string) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range f.records {
		if e.EmployeeID == employeeID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeExpenseRepo) ListPendingForApprover(ctx context.Context, approverID string) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range f.records {
		if e.ApproverID == approverID && e.Status == models.StatusPending {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeExpenseRepo) ListPending(ctx context.Context) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range f.records {
		if e.Status == models.StatusPending {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeExpenseRepo) UpdateStatus(ctx context.Context, id, from, to, rejectionReason string) error {
	e, ok := f.records[id]
	if !ok || e.Status != from {
		return expenseRepo.ErrStatusConflict
	}
	e.Status = to
	if rejectionReason != "" {
		e.RejectionReason = rejectionReason
	}
	return nil
}

type fakeEmployees struct {
	byID    map[string]*models.Employee
	byEmail map[string]*models.Employee
}

func newFakeEmployees(list ...*models.Employee) *fakeEmployees {
	f := &fakeEmployees{byID: map[string]*models.Employee{}, byEmail: map[string]*models.Employee{}}
	for _, e := range list {
		f.byID[e.ID] = e
		f.byEmail[e.Email] = e
	}
	return f
}

func (f *fakeEmployees) Register(ctx context.Context, e models.Employee, password string) (*models.Employee, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEmployees) Authenticate(ctx context.Context, email, password string) (*employee.AuthResult, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEmployees) RevokeToken(ctx context.Context, employeeID string) error { return nil }

func (f *fakeEmployees) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeEmployees) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	if e, ok := f.byEmail[email]; ok {
		return e, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeEmployees) List(ctx context.Context) ([]models.Employee, error) { return nil, nil }

func (f *fakeEmployees) UpdateFCMToken(ctx context.Context, id, token string) error { return nil }

func (f *fakeEmployees) ResolveApprover(ctx context.Context, requester *models.Employee) (*models.Employee, error) {
	if requester.ReportingManagerID != "" {
		return f.GetByID(ctx, requester.ReportingManagerID)
	}
	return nil, errors.New("no approver")
}

type fakeNotifications struct {
	requests []notification.ApprovalRequest
	outcomes []notification.ApprovalOutcome
}

func (f *fakeNotifications) SendApprovalRequest(ctx context.Context, req notification.ApprovalRequest) (*notification.DeliveryReport, error) {
	f.requests = append(f.requests, req)
	return &notification.DeliveryReport{NotificationID: "notif-1"}, nil
}

func (f *fakeNotifications) SendApprovalOutcome(ctx context.Context, out notification.ApprovalOutcome) (*notification.DeliveryReport, error) {
	f.outcomes = append(f.outcomes, out)
	return &notification.DeliveryReport{NotificationID: "notif-2"}, nil
}

func (f *fakeNotifications) List(ctx context.Context, userID string, limit int64) ([]models.Notification, error) {
	return nil, nil
}
func (f *fakeNotifications) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}
func (f *fakeNotifications) MarkRead(ctx context.Context, id, userID string) error { return nil }

func (f *fakeNotifications) MarkAllRead(ctx context.Context, userID string) error { return nil }

func (f *fakeNotifications) MarkActioned(ctx context.Context, id, userID string) error {
	return nil
}

type fakeScheduler struct {
	scheduled []models.ReminderPayload
	fireAts   []time.Time
}

func (f *fakeScheduler) ScheduleApprovalReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	f.scheduled = append(f.scheduled, payload)
	f.fireAts = append(f.fireAts, fireAt)
	return nil
}

var (
	requesterEmp = &models.Employee{ID: "emp-1", Name: "Asha", Email: "asha@example.com", Role: models.RoleEmployee, ReportingManagerID: "mgr-1"}
	approverEmp  = &models.Employee{ID: "mgr-1", Name: "Vikram", Email: "vikram@example.com", Role: models.RoleManager}
)

func newTestService() (*DefaultExpenseService, *fakeExpenseRepo, *fakeNotifications) {
	repo := newFakeExpenseRepo()
	notif := &fakeNotifications{}
	svc := &DefaultExpenseService{
		Repo:         repo,
		Employees:    newFakeEmployees(requesterEmp, approverEmp),
		Notification: notif,
		Reminders:    &fakeScheduler{},
	}
	return svc, repo, notif
}

func TestSubmit_DefaultsAndDetails(t *testing.T) {
	svc, repo, notif := newTestService()

	e, report, err := svc.Submit(context.Background(), "emp-1", SubmitExpenseInput{
		Category: "travel",
		Amount:   5000,
	})
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, models.StatusPending, e.Status)
	assert.Equal(t, "mgr-1", e.ApproverID)
	assert.Equal(t, "₹", e.Currency)

	stored, err := repo.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), stored.Amount)

	require.Len(t, notif.requests, 1)
	req := notif.requests[0]
	assert.Equal(t, RecordType, req.RecordType)
	assert.Equal(t, "5000", req.Details["amount"])
	assert.Equal(t, "travel", req.Details["category"])
}

func TestSubmit_RejectsNonPositiveAmount(t *testing.T) {
	svc, _, _ := newTestService()
	_, _, err := svc.Submit(context.Background(), "emp-1", SubmitExpenseInput{Category: "travel", Amount: 0})
	require.Error(t, err)
}

func TestApproveAndReject(t *testing.T) {
	svc, repo, notif := newTestService()
	e, _, err := svc.Submit(context.Background(), "emp-1", SubmitExpenseInput{Category: "travel", Amount: 5000})
	require.NoError(t, err)

	decided, err := svc.Approve(context.Background(), e.ID, approverEmp)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, decided.Status)

	stored, _ := repo.GetByID(context.Background(), e.ID)
	assert.Equal(t, models.StatusApproved, stored.Status)

	require.Len(t, notif.outcomes, 1)
	assert.Equal(t, models.StatusApproved, notif.outcomes[0].Outcome)

	// A second decision on the same record is an illegal transition.
	_, err = svc.Reject(context.Background(), e.ID, approverEmp, "late")
	var transitionErr *approval.TransitionError
	require.ErrorAs(t, err, &transitionErr)
}

func TestApprove_SelfApprovalBlocked(t *testing.T) {
	svc, repo, _ := newTestService()

	self := &models.Employee{ID: "mgr-1", Name: "Vikram", Email: "vikram@example.com", Role: models.RoleManager, ReportingManagerID: "emp-1"}
	peer := &models.Employee{ID: "emp-1", Name: "Asha", Email: "asha@example.com", Role: models.RoleEmployee}
	svc.Employees = newFakeEmployees(self, peer)

	e, _, err := svc.Submit(context.Background(), "mgr-1", SubmitExpenseInput{Category: "travel", Amount: 100})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), e.ID, self)
	var selfErr *approval.SelfApprovalError
	require.ErrorAs(t, err, &selfErr)

	stored, _ := repo.GetByID(context.Background(), e.ID)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestExecuteEmailAction_Reject(t *testing.T) {
	svc, repo, _ := newTestService()
	e, _, err := svc.Submit(context.Background(), "emp-1", SubmitExpenseInput{Category: "travel", Amount: 100})
	require.NoError(t, err)

	err = svc.ExecuteEmailAction(context.Background(), e.ID, models.EmailActionReject, "vikram@example.com")
	require.NoError(t, err)

	stored, _ := repo.GetByID(context.Background(), e.ID)
	assert.Equal(t, models.StatusRejected, stored.Status)
	assert.Equal(t, "Rejected via email", stored.RejectionReason)
}
