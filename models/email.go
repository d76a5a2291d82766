package models

import "time"

// Email action kinds embedded in one-click approval links.
const (
	EmailActionApprove = "approve"
	EmailActionReject  = "reject"
)

// EmailActionToken is a single-use, time-bound credential minted when an
// approval email is sent. Issuing a new email mints fresh tokens; old ones
// are left alone and simply expire.
type EmailActionToken struct {
	Token          string    `bson:"token" json:"token"`
	RecordType     string    `bson:"recordType" json:"recordType"`
	RecordID       string    `bson:"recordId" json:"recordId"`
	Action         string    `bson:"action" json:"action"`
	RecipientEmail string    `bson:"recipientEmail" json:"recipientEmail"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	ExpiresAt      time.Time `bson:"expiresAt" json:"expiresAt"`
	Used           bool      `bson:"used" json:"used"`
}

// EmailLog is an append-only audit row for a sent email.
type EmailLog struct {
	ID         string    `bson:"id" json:"id"`
	RecordType string    `bson:"recordType" json:"recordType"`
	RecordID   string    `bson:"recordId" json:"recordId"`
	Recipient  string    `bson:"recipient" json:"recipient"`
	Subject    string    `bson:"subject" json:"subject"`
	SentAt     time.Time `bson:"sentAt" json:"sentAt"`
	Status     string    `bson:"status" json:"status"`
}
