package realtime

import "context"

// Notifier delivers a live payload to a connected client of the target user.
// Delivery is at-most-once and unordered relative to other channels; callers
// must treat any error as best-effort feedback, never as a hard failure.
type Notifier interface {
	Send(ctx context.Context, userID, title, body string, data map[string]string) error
}
