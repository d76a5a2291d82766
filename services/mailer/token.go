package mailer

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"orgflow/models"
)

// TokenTTL is how long an email action token stays valid.
const TokenTTL = 24 * time.Hour

// tokenLength is the truncated hex length of a minted token. The truncation
// keeps action URLs short; the 128-bit random salt keeps collisions
// negligible at this length.
const tokenLength = 32

// MintToken derives a single-use action token for one (record, action) pair.
func MintToken(recordType, recordID, action string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate token salt: %w", err)
	}
	sum := sha256.Sum256([]byte(recordType + ":" + recordID + ":" + action + ":" + hex.EncodeToString(salt)))
	return hex.EncodeToString(sum[:])[:tokenLength], nil
}

// mintActionTokens mints the approve and reject tokens for one email.
func mintActionTokens(recordType, recordID, recipientEmail string, now time.Time) ([]models.EmailActionToken, error) {
	actions := []string{models.EmailActionApprove, models.EmailActionReject}
	tokens := make([]models.EmailActionToken, 0, len(actions))
	for _, action := range actions {
		tok, err := MintToken(recordType, recordID, action)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, models.EmailActionToken{
			Token:          tok,
			RecordType:     recordType,
			RecordID:       recordID,
			Action:         action,
			RecipientEmail: recipientEmail,
			CreatedAt:      now,
			ExpiresAt:      now.Add(TokenTTL),
			Used:           false,
		})
	}
	return tokens, nil
}
