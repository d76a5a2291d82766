package notification

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"orgflow/models"
	"orgflow/services/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Fakes
// ==========================

type fakeNotificationRepo struct {
	created   []models.Notification
	createErr error
	actioned  []string // "referenceType/referenceID" pairs flipped
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n models.Notification) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	n.ID = fmt.Sprintf("notif-%d", len(f.created)+1)
	f.created = append(f.created, n)
	return n.ID, nil
}

func (f *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	for i := range f.created {
		if f.created[i].ID == id {
			return &f.created[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range f.created {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID string) error { return nil }

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID string) error { return nil }

func (f *fakeNotificationRepo) MarkActioned(ctx context.Context, id, userID string) error {
	return nil
}

func (f *fakeNotificationRepo) MarkActionedByReference(ctx context.Context, referenceType, referenceID string) error {
	f.actioned = append(f.actioned, referenceType+"/"+referenceID)
	return nil
}

type fakeMailer struct {
	sent   []mailer.ApprovalEmail
	status mailer.SendStatus
	err    error
}

func (f *fakeMailer) SendApprovalEmail(ctx context.Context, email mailer.ApprovalEmail) (*mailer.SendResult, error) {
	f.sent = append(f.sent, email)
	if f.err != nil {
		return &mailer.SendResult{Status: mailer.StatusFailed, Subject: email.Subject}, f.err
	}
	status := f.status
	if status == "" {
		status = mailer.StatusSent
	}
	return &mailer.SendResult{Status: status, Subject: email.Subject}, nil
}

type fakeNotifier struct {
	pushes []string // recipient IDs
	err    error
}

func (f *fakeNotifier) Send(ctx context.Context, userID, title, body string, data map[string]string) error {
	if f.err != nil {
		return f.err
	}
	f.pushes = append(f.pushes, userID)
	return nil
}

func testRequest() ApprovalRequest {
	return ApprovalRequest{
		RecordType: "leave_request",
		RecordID:   "lr-1",
		Requester:  models.Party{ID: "emp-1", Name: "Asha", Email: "asha@example.com"},
		Approver:   models.Party{ID: "mgr-1", Name: "Vikram", Email: "vikram@example.com"},
		Details:    map[string]string{"leave_type": "casual", "days": "2"},
	}
}

// ==========================
// SendApprovalRequest
// ==========================

func TestSendApprovalRequest_AllChannelsDelivered(t *testing.T) {
	repo := &fakeNotificationRepo{}
	mail := &fakeMailer{}
	push := &fakeNotifier{}
	svc := &DefaultNotificationService{Repo: repo, Mailer: mail, Realtime: push}

	report, err := svc.SendApprovalRequest(context.Background(), testRequest())
	require.NoError(t, err)
	require.NotNil(t, report)

	require.Len(t, repo.created, 1)
	n := repo.created[0]
	assert.Equal(t, "mgr-1", n.UserID)
	assert.Equal(t, "leave_request_approval", n.Type)
	assert.Equal(t, "Leave Request Approval", n.Title)
	assert.Equal(t, "Asha has submitted a leave request for your approval", n.Message)
	assert.Equal(t, "/leaves/approvals", n.Link)
	assert.Equal(t, "leave_request", n.ReferenceType)
	assert.Equal(t, "lr-1", n.ReferenceID)
	assert.Equal(t, models.NotificationStatusPending, n.Status)

	assert.Equal(t, n.ID, report.NotificationID)
	assert.Equal(t, ChannelDelivered, report.Realtime.Status)
	assert.Equal(t, ChannelDelivered, report.Email.Status)

	assert.Equal(t, []string{"mgr-1"}, push.pushes)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "Leave Request Approval – casual leave, 2 day(s)", mail.sent[0].Subject)
}

func TestSendApprovalRequest_NotificationInsertIsMandatory(t *testing.T) {
	repo := &fakeNotificationRepo{createErr: errors.New("mongo down")}
	mail := &fakeMailer{}
	push := &fakeNotifier{}
	svc := &DefaultNotificationService{Repo: repo, Mailer: mail, Realtime: push}

	report, err := svc.SendApprovalRequest(context.Background(), testRequest())
	require.Error(t, err)
	assert.Nil(t, report)

	// No channel fires when the mandatory insert failed.
	assert.Empty(t, push.pushes)
	assert.Empty(t, mail.sent)
}

func TestSendApprovalRequest_ChannelFailuresAreBestEffort(t *testing.T) {
	repo := &fakeNotificationRepo{}
	mail := &fakeMailer{err: errors.New("smtp 550")}
	push := &fakeNotifier{err: errors.New("device not registered")}
	svc := &DefaultNotificationService{Repo: repo, Mailer: mail, Realtime: push}

	report, err := svc.SendApprovalRequest(context.Background(), testRequest())
	require.NoError(t, err)

	// The pending notification exists regardless of channel failures.
	require.Len(t, repo.created, 1)
	assert.Equal(t, ChannelFailed, report.Realtime.Status)
	assert.Error(t, report.Realtime.Err)
	assert.Equal(t, ChannelFailed, report.Email.Status)
	assert.Error(t, report.Email.Err)
}

func TestSendApprovalRequest_SkippedEmailIsNotAFailure(t *testing.T) {
	repo := &fakeNotificationRepo{}
	mail := &fakeMailer{status: mailer.StatusSkipped}
	svc := &DefaultNotificationService{Repo: repo, Mailer: mail, Realtime: &fakeNotifier{}}

	report, err := svc.SendApprovalRequest(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, ChannelSkipped, report.Email.Status)
	assert.Nil(t, report.Email.Err)
}

func TestSendApprovalRequest_NilChannelsAreSkipped(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := &DefaultNotificationService{Repo: repo}

	report, err := svc.SendApprovalRequest(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, ChannelSkipped, report.Realtime.Status)
	assert.Equal(t, ChannelSkipped, report.Email.Status)
}

func TestSendApprovalRequest_CustomMessageAndLinkOverride(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := &DefaultNotificationService{Repo: repo}

	req := testRequest()
	req.CustomMessage = "Please review urgently"
	req.Link = "/leaves/lr-1"

	_, err := svc.SendApprovalRequest(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Please review urgently", repo.created[0].Message)
	assert.Equal(t, "/leaves/lr-1", repo.created[0].Link)
}

func TestSendApprovalRequest_UnknownRecordTypeStillRoutes(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := &DefaultNotificationService{Repo: repo}

	req := testRequest()
	req.RecordType = "widget_approval"

	_, err := svc.SendApprovalRequest(context.Background(), req)
	require.NoError(t, err)
	n := repo.created[0]
	assert.Equal(t, "Widget Approval", n.Title)
	assert.Equal(t, "approval_request", n.Type)
	assert.Equal(t, "/dashboard", n.Link)
	assert.Equal(t, "Asha has submitted a widget approval for your approval", n.Message)
}

// Duplicate submissions are not deduplicated: every call inserts a fresh
// notification row even for the same reference.
func TestSendApprovalRequest_NoDeduplication(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := &DefaultNotificationService{Repo: repo}

	_, err := svc.SendApprovalRequest(context.Background(), testRequest())
	require.NoError(t, err)
	_, err = svc.SendApprovalRequest(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Len(t, repo.created, 2)
}

// ==========================
// SendApprovalOutcome
// ==========================

func TestSendApprovalOutcome_NotifiesRequesterWithoutEmail(t *testing.T) {
	repo := &fakeNotificationRepo{}
	mail := &fakeMailer{}
	push := &fakeNotifier{}
	svc := &DefaultNotificationService{Repo: repo, Mailer: mail, Realtime: push}

	report, err := svc.SendApprovalOutcome(context.Background(), ApprovalOutcome{
		RecordType: "leave_request",
		RecordID:   "lr-1",
		Requester:  models.Party{ID: "emp-1", Name: "Asha"},
		Approver:   models.Party{ID: "mgr-1", Name: "Vikram"},
		Outcome:    models.StatusApproved,
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	n := repo.created[0]
	assert.Equal(t, "emp-1", n.UserID)
	assert.Equal(t, "leave_request_approved", n.Type)
	assert.Equal(t, "Leave Request Approval Approved", n.Title)
	assert.Equal(t, "Your leave request was approved by Vikram", n.Message)
	assert.Equal(t, models.NotificationStatusActioned, n.Status)

	// The approver's stale pending rows get flipped.
	assert.Equal(t, []string{"leave_request/lr-1"}, repo.actioned)

	// Outcome notifications never send email.
	assert.Empty(t, mail.sent)
	assert.Equal(t, ChannelSkipped, report.Email.Status)
	assert.Equal(t, ChannelDelivered, report.Realtime.Status)
}

func TestSendApprovalOutcome_RejectionIncludesReason(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := &DefaultNotificationService{Repo: repo}

	_, err := svc.SendApprovalOutcome(context.Background(), ApprovalOutcome{
		RecordType: "expense",
		RecordID:   "exp-1",
		Requester:  models.Party{ID: "emp-1", Name: "Asha"},
		Approver:   models.Party{ID: "mgr-1", Name: "Vikram"},
		Outcome:    models.StatusRejected,
		Reason:     "Missing receipt",
	})
	require.NoError(t, err)
	assert.Equal(t, "Your expense was rejected by Vikram: Missing receipt", repo.created[0].Message)
}
