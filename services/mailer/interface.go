package mailer

import (
	"context"

	"orgflow/models"
)

// SendStatus is the outcome of one email send attempt.
type SendStatus string

const (
	StatusSent    SendStatus = "sent"
	StatusSkipped SendStatus = "skipped" // SMTP not configured; deliberate no-op
	StatusFailed  SendStatus = "failed"
)

// SendResult reports what a send attempt did.
type SendResult struct {
	Status  SendStatus
	Subject string
}

// ApprovalEmail is the input for one approval email: the record being
// approved, the parties, and the display fields for the details table.
type ApprovalEmail struct {
	RecordType string
	RecordID   string
	Subject    string
	Title      string
	Requester  models.Party
	Approver   models.Party
	Details    map[string]string
	Note       string // optional note from the requester
}

// MailerService renders and delivers approval emails with one-click
// approve/reject action links.
type MailerService interface {
	SendApprovalEmail(ctx context.Context, email ApprovalEmail) (*SendResult, error)
}
