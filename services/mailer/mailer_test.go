package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"orgflow/config"
	"orgflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// ==========================
// Fakes
// ==========================

type fakeTokenRepo struct {
	tokens    []models.EmailActionToken
	createErr error
}

func (f *fakeTokenRepo) Create(ctx context.Context, t models.EmailActionToken) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens = append(f.tokens, t)
	return nil
}

func (f *fakeTokenRepo) GetByToken(ctx context.Context, token string) (*models.EmailActionToken, error) {
	for i := range f.tokens {
		if f.tokens[i].Token == token {
			return &f.tokens[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeTokenRepo) Consume(ctx context.Context, token string) (*models.EmailActionToken, error) {
	t, err := f.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	t.Used = true
	return t, nil
}

type fakeLogRepo struct {
	entries []models.EmailLog
}

func (f *fakeLogRepo) Append(ctx context.Context, entry models.EmailLog) (string, error) {
	f.entries = append(f.entries, entry)
	return "log-1", nil
}

func (f *fakeLogRepo) ListByRecord(ctx context.Context, recordType, recordID string) ([]models.EmailLog, error) {
	return f.entries, nil
}

type sentMessage struct {
	host string
	to   []string
	msg  []byte
}

func testMailer(tokens *fakeTokenRepo, logs *fakeLogRepo, now time.Time, sent *[]sentMessage, sendErr error) *DefaultMailerService {
	return &DefaultMailerService{
		Tokens: tokens,
		Logs:   logs,
		now:    func() time.Time { return now },
		send: func(host string, port int, user, password, from string, to []string, msg []byte) error {
			if sendErr != nil {
				return sendErr
			}
			*sent = append(*sent, sentMessage{host: host, to: to, msg: msg})
			return nil
		},
	}
}

func configureSMTP(user, password string) {
	config.AppConfig.SMTPHost = "smtp.example.com"
	config.AppConfig.SMTPPort = 587
	config.AppConfig.SMTPUser = user
	config.AppConfig.SMTPPassword = password
	config.AppConfig.SenderName = "Orgflow"
	config.AppConfig.FrontendBaseURL = "https://app.example.com/"
}

func testEmail() ApprovalEmail {
	return ApprovalEmail{
		RecordType: "expense",
		RecordID:   "exp-1",
		Subject:    "Expense Approval – ₹5000",
		Title:      "Expense Approval",
		Requester:  models.Party{ID: "emp-1", Name: "Asha", Email: "asha@example.com"},
		Approver:   models.Party{ID: "mgr-1", Name: "Vikram", Email: "vikram@example.com"},
		Details:    map[string]string{"category": "travel", "amount": "5000"},
	}
}

// ==========================
// Token minting
// ==========================

func TestMintToken(t *testing.T) {
	tok, err := MintToken("expense", "exp-1", models.EmailActionApprove)
	require.NoError(t, err)
	assert.Len(t, tok, tokenLength)

	// The random salt makes every mint unique, even for identical inputs.
	other, err := MintToken("expense", "exp-1", models.EmailActionApprove)
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}

func TestMintActionTokens(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tokens, err := mintActionTokens("expense", "exp-1", "vikram@example.com", now)
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	assert.Equal(t, models.EmailActionApprove, tokens[0].Action)
	assert.Equal(t, models.EmailActionReject, tokens[1].Action)
	for _, tok := range tokens {
		assert.Equal(t, "expense", tok.RecordType)
		assert.Equal(t, "exp-1", tok.RecordID)
		assert.Equal(t, "vikram@example.com", tok.RecipientEmail)
		assert.Equal(t, now, tok.CreatedAt)
		assert.Equal(t, now.Add(24*time.Hour), tok.ExpiresAt)
		assert.False(t, tok.Used)
	}
}

// ==========================
// SendApprovalEmail
// ==========================

func TestSendApprovalEmail_Sent(t *testing.T) {
	configureSMTP("mailer@example.com", "secret")
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tokens := &fakeTokenRepo{}
	logs := &fakeLogRepo{}
	var sent []sentMessage
	svc := testMailer(tokens, logs, now, &sent, nil)

	res, err := svc.SendApprovalEmail(context.Background(), testEmail())
	require.NoError(t, err)
	assert.Equal(t, StatusSent, res.Status)

	// Both action tokens are persisted before the send.
	require.Len(t, tokens.tokens, 2)
	assert.Equal(t, models.EmailActionApprove, tokens.tokens[0].Action)
	assert.Equal(t, models.EmailActionReject, tokens.tokens[1].Action)

	require.Len(t, sent, 1)
	assert.Equal(t, []string{"vikram@example.com"}, sent[0].to)

	body := string(sent[0].msg)
	assert.Contains(t, body, "Subject: Expense Approval – ₹5000")
	assert.Contains(t, body, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, body, "https://app.example.com/api/email-actions/execute/"+tokens.tokens[0].Token)
	assert.Contains(t, body, "https://app.example.com/api/email-actions/execute/"+tokens.tokens[1].Token)
	assert.Contains(t, body, "Vikram")
	assert.Contains(t, body, "Asha")

	// An audit row lands for the sent mail.
	require.Len(t, logs.entries, 1)
	assert.Equal(t, "exp-1", logs.entries[0].RecordID)
	assert.Equal(t, string(StatusSent), logs.entries[0].Status)
	assert.Equal(t, now, logs.entries[0].SentAt)
}

// Missing SMTP credentials is a deliberate no-op: no error, no audit row,
// but tokens are still minted so the links work once SMTP comes online.
func TestSendApprovalEmail_SkippedWhenUnconfigured(t *testing.T) {
	configureSMTP("", "")

	tokens := &fakeTokenRepo{}
	logs := &fakeLogRepo{}
	var sent []sentMessage
	svc := testMailer(tokens, logs, time.Now(), &sent, nil)

	res, err := svc.SendApprovalEmail(context.Background(), testEmail())
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.Status)
	assert.Empty(t, sent)
	assert.Empty(t, logs.entries)
	assert.Len(t, tokens.tokens, 2)
}

func TestSendApprovalEmail_SendFailure(t *testing.T) {
	configureSMTP("mailer@example.com", "secret")

	tokens := &fakeTokenRepo{}
	logs := &fakeLogRepo{}
	var sent []sentMessage
	svc := testMailer(tokens, logs, time.Now(), &sent, errors.New("connection refused"))

	res, err := svc.SendApprovalEmail(context.Background(), testEmail())
	require.Error(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Empty(t, logs.entries)
}

func TestSendApprovalEmail_TokenPersistFailure(t *testing.T) {
	configureSMTP("mailer@example.com", "secret")

	tokens := &fakeTokenRepo{createErr: errors.New("mongo down")}
	var sent []sentMessage
	svc := testMailer(tokens, &fakeLogRepo{}, time.Now(), &sent, nil)

	res, err := svc.SendApprovalEmail(context.Background(), testEmail())
	require.Error(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Empty(t, sent)
}

// ==========================
// Rendering helpers
// ==========================

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("Orgflow <mailer@example.com>", "vikram@example.com", "Hello", "<p>Hi</p>"))

	assert.True(t, strings.HasPrefix(msg, "From: Orgflow <mailer@example.com>\r\n"))
	assert.Contains(t, msg, "To: vikram@example.com\r\n")
	assert.Contains(t, msg, "Subject: Hello\r\n")
	assert.Contains(t, msg, "MIME-Version: 1.0\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n<p>Hi</p>"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Leave Type", titleCase("leave_type"))
	assert.Equal(t, "Amount", titleCase("amount"))
	assert.Equal(t, "From Date", titleCase("from_date"))
}

func TestDetailRows_SortedByKey(t *testing.T) {
	rows := detailRows(map[string]string{
		"to_date":    "2026-03-14",
		"from_date":  "2026-03-12",
		"leave_type": "casual",
	})
	require.Len(t, rows, 3)
	assert.Equal(t, "From Date", rows[0].Label)
	assert.Equal(t, "Leave Type", rows[1].Label)
	assert.Equal(t, "To Date", rows[2].Label)
}
