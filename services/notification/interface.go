package notification

import (
	"context"

	"orgflow/models"
)

// ChannelStatus is the outcome of one delivery channel.
type ChannelStatus string

const (
	ChannelDelivered ChannelStatus = "delivered"
	ChannelSkipped   ChannelStatus = "skipped"
	ChannelFailed    ChannelStatus = "failed"
)

// ChannelResult pairs a channel outcome with its error, if any. Failures are
// reported here for observability; they never abort the overall send.
type ChannelResult struct {
	Status ChannelStatus
	Err    error
}

// DeliveryReport describes what happened on each channel of one send. The
// notification insert is the only mandatory side effect; its failure is
// returned as the call's error instead of appearing here.
type DeliveryReport struct {
	NotificationID string
	Realtime       ChannelResult
	Email          ChannelResult
}

// ApprovalRequest is the router input for a new pending record.
type ApprovalRequest struct {
	RecordType    string
	RecordID      string
	Requester     models.Party
	Approver      models.Party
	Details       map[string]string
	CustomMessage string
	Note          string // optional note from the requester, shown in the email callout
	Link          string
}

// ApprovalOutcome notifies the requester after a terminal transition.
type ApprovalOutcome struct {
	RecordType string
	RecordID   string
	Requester  models.Party
	Approver   models.Party
	Outcome    string // "approved" or "rejected"
	Reason     string // rejection reason, if any
}

// NotificationService routes approval traffic into the notification store,
// the realtime channel and email, and exposes the store's read surface.
type NotificationService interface {
	// SendApprovalRequest persists a pending notification for the approver
	// (mandatory; its failure is the returned error) and fires the realtime
	// and email channels best-effort.
	SendApprovalRequest(ctx context.Context, req ApprovalRequest) (*DeliveryReport, error)
	// SendApprovalOutcome notifies the requester of an approve/reject.
	// No email is sent on this leg.
	SendApprovalOutcome(ctx context.Context, out ApprovalOutcome) (*DeliveryReport, error)

	List(ctx context.Context, userID string, limit int64) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	MarkActioned(ctx context.Context, id, userID string) error
}
