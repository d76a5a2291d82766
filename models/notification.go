package models

import "time"

// Notification statuses. A notification starts out pending and becomes
// actioned once the approver acts on the underlying record.
const (
	NotificationStatusPending  = "pending"
	NotificationStatusActioned = "actioned"
)

// Notification is an in-app notification row. Rows are never hard-deleted;
// recipients flip isRead, the approval flow flips status.
type Notification struct {
	ID            string    `bson:"id" json:"id"`
	UserID        string    `bson:"userId" json:"userId"` // recipient
	Type          string    `bson:"type" json:"type"`     // e.g. "leave_request_approval", "expense_approved"
	Title         string    `bson:"title" json:"title"`
	Message       string    `bson:"message" json:"message"`
	Link          string    `bson:"link" json:"link"`
	ReferenceType string    `bson:"referenceType" json:"referenceType"` // record type of the referenced business record
	ReferenceID   string    `bson:"referenceId" json:"referenceId"`     // weak reference, lookup only
	IsRead        bool      `bson:"isRead" json:"isRead"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
