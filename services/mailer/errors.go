package mailer

import "errors"

// ErrSMTPAuth marks an authentication failure against the SMTP server, so
// callers can tell "misconfigured credentials" apart from a transient
// delivery failure. Matched with errors.Is.
var ErrSMTPAuth = errors.New("smtp authentication failed")
