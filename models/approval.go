package models

// Approval statuses shared by every approvable record. Most records use the
// linear pending -> approved/rejected flow; records that need a second stage
// go pending -> rm_approved -> pending_client -> applied.
const (
	StatusDraft         = "draft"
	StatusPending       = "pending"
	StatusApproved      = "approved"
	StatusRejected      = "rejected"
	StatusRMApproved    = "rm_approved"
	StatusPendingClient = "pending_client"
	StatusApplied       = "applied"
)

// Party identifies a requester or approver in an approval flow.
type Party struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ReminderPayload is the asynq task payload for a pending-approval nudge.
type ReminderPayload struct {
	RecordType string `json:"recordType"`
	RecordID   string `json:"recordId"`
	ApproverID string `json:"approverId"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}
