package realtime

import (
	"context"
	"fmt"

	employeeRepo "orgflow/database/repository/employee"
	"orgflow/utils"

	"firebase.google.com/go/v4/messaging"
)

// FCMNotifier is the production Notifier. It looks up the employee's device
// token and pushes via Firebase Cloud Messaging.
type FCMNotifier struct {
	Employees employeeRepo.EmployeeRepository
}

// NewFCMNotifier wires the notifier against the employee store.
func NewFCMNotifier(employees employeeRepo.EmployeeRepository) (*FCMNotifier, error) {
	if employees == nil {
		return nil, fmt.Errorf("realtime notifier initialization error: employee repository is nil")
	}
	return &FCMNotifier{Employees: employees}, nil
}

// Send pushes a notification to the user's registered device. A user with no
// registered token is simply not connected; that is reported as an error for
// observability but callers swallow it.
func (n *FCMNotifier) Send(ctx context.Context, userID, title, body string, data map[string]string) error {
	e, err := n.Employees.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("realtime send: could not find employee %s: %w", userID, err)
	}
	if e.FCMToken == "" {
		return fmt.Errorf("realtime send: employee %s has no registered device", userID)
	}

	msg := &messaging.Message{
		Token: e.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "approvals",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("realtime send: failed to push FCM message: %w", err)
	}
	return nil
}
