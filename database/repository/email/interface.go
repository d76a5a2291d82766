package emailRepo

import (
	"context"

	"orgflow/models"
)

// TokenRepository persists single-use email action tokens. Tokens are never
// deleted; consumption flips used exactly once.
type TokenRepository interface {
	Create(ctx context.Context, token models.EmailActionToken) error
	GetByToken(ctx context.Context, token string) (*models.EmailActionToken, error)
	// Consume atomically marks an unused token as used and returns it.
	// Returns ErrTokenUsed if the token exists but was already consumed,
	// mongo.ErrNoDocuments if it does not exist.
	Consume(ctx context.Context, token string) (*models.EmailActionToken, error)
}

// LogRepository appends immutable audit rows for sent emails.
type LogRepository interface {
	Append(ctx context.Context, entry models.EmailLog) (string, error)
	ListByRecord(ctx context.Context, recordType, recordID string) ([]models.EmailLog, error)
}
