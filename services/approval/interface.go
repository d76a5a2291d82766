package approval

import "context"

// EmailActioner executes the approve/reject transition of one record type on
// behalf of an email link click. The recipient email identifies the actor;
// implementations must run the same guard and transition checks as the REST
// endpoints.
type EmailActioner interface {
	ExecuteEmailAction(ctx context.Context, recordID, action, recipientEmail string) error
}
