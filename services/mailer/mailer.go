package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"orgflow/config"
	emailRepo "orgflow/database/repository/email"
	"orgflow/models"
	"orgflow/utils"

	"go.uber.org/zap"
)

// smtpSender delivers a rendered message; replaced in tests.
type smtpSender func(host string, port int, user, password, from string, to []string, msg []byte) error

// DefaultMailerService is the production implementation.
type DefaultMailerService struct {
	Tokens emailRepo.TokenRepository
	Logs   emailRepo.LogRepository

	send smtpSender
	now  func() time.Time
}

// NewDefaultMailerService wires the mailer against the token and log stores.
func NewDefaultMailerService(tokens emailRepo.TokenRepository, logs emailRepo.LogRepository) *DefaultMailerService {
	return &DefaultMailerService{
		Tokens: tokens,
		Logs:   logs,
		send:   sendWithSTARTTLS,
		now:    time.Now,
	}
}

// SendApprovalEmail mints the approve/reject tokens, renders the branded
// HTML body and delivers it over SMTP. Missing SMTP credentials is a
// deliberate no-op path: the result is StatusSkipped and no error.
func (s *DefaultMailerService) SendApprovalEmail(ctx context.Context, email ApprovalEmail) (*SendResult, error) {
	logger := utils.GetLogger()
	now := s.now()

	tokens, err := mintActionTokens(email.RecordType, email.RecordID, email.Approver.Email, now)
	if err != nil {
		return &SendResult{Status: StatusFailed, Subject: email.Subject}, err
	}
	for _, t := range tokens {
		if err := s.Tokens.Create(ctx, t); err != nil {
			return &SendResult{Status: StatusFailed, Subject: email.Subject}, fmt.Errorf("failed to persist action token: %w", err)
		}
	}

	base := strings.TrimRight(config.AppConfig.FrontendBaseURL, "/")
	data := approvalTemplateData{
		SenderName:    config.AppConfig.SenderName,
		Title:         email.Title,
		ApproverName:  email.Approver.Name,
		RequesterName: email.Requester.Name,
		Rows:          detailRows(email.Details),
		Note:          email.Note,
		ApproveURL:    fmt.Sprintf("%s/api/email-actions/execute/%s", base, tokens[0].Token),
		RejectURL:     fmt.Sprintf("%s/api/email-actions/execute/%s", base, tokens[1].Token),
	}
	body, err := renderApprovalBody(data)
	if err != nil {
		return &SendResult{Status: StatusFailed, Subject: email.Subject}, err
	}

	user := config.AppConfig.SMTPUser
	password := config.AppConfig.SMTPPassword
	if user == "" || password == "" {
		logger.Debug("SMTP not configured, skipping approval email",
			zap.String("recordType", email.RecordType),
			zap.String("recordId", email.RecordID),
		)
		return &SendResult{Status: StatusSkipped, Subject: email.Subject}, nil
	}

	from := fmt.Sprintf("%s <%s>", config.AppConfig.SenderName, user)
	msg := buildMessage(from, email.Approver.Email, email.Subject, body)

	if err := s.send(config.AppConfig.SMTPHost, config.AppConfig.SMTPPort, user, password, user, []string{email.Approver.Email}, msg); err != nil {
		return &SendResult{Status: StatusFailed, Subject: email.Subject}, err
	}

	if _, err := s.Logs.Append(ctx, models.EmailLog{
		RecordType: email.RecordType,
		RecordID:   email.RecordID,
		Recipient:  email.Approver.Email,
		Subject:    email.Subject,
		SentAt:     now,
		Status:     string(StatusSent),
	}); err != nil {
		// The mail is already out; a failed audit row is logged, not returned.
		logger.Error("failed to append email log", zap.Error(err))
	}

	return &SendResult{Status: StatusSent, Subject: email.Subject}, nil
}

// buildMessage assembles the RFC 822 message with HTML content headers.
func buildMessage(from, to, subject, body string) []byte {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}

// sendWithSTARTTLS dials the SMTP server, upgrades to TLS and authenticates
// with PLAIN auth before handing over the message. Authentication failures
// are wrapped in ErrSMTPAuth so callers can tell them apart.
func sendWithSTARTTLS(host string, port int, user, password, from string, to []string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", host, port)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	auth := smtp.PlainAuth("", user, password, host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("%w: %v", ErrSMTPAuth, err)
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open message body: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close message body: %w", err)
	}

	return client.Quit()
}
