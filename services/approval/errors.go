package approval

import "fmt"

// SelfApprovalError is returned when the actor of an approve/reject call is
// the requester of the record. Handlers map it to HTTP 403.
type SelfApprovalError struct {
	ActorID string
}

func (e *SelfApprovalError) Error() string {
	return fmt.Sprintf("actor %s cannot approve or reject their own request", e.ActorID)
}

// NotApproverError is returned when the actor is neither the assigned
// approver of the record nor an admin.
type NotApproverError struct {
	ActorID string
}

func (e *NotApproverError) Error() string {
	return fmt.Sprintf("actor %s is not the assigned approver for this record", e.ActorID)
}

// TransitionError is returned for an illegal status change.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}
