package approval

import (
	"orgflow/models"
)

// legalTransitions is the edge set of the approval state machine. Most
// records follow the linear pending -> approved/rejected flow; the extended
// edges cover two-stage records (reporting manager, then client).
var legalTransitions = map[string][]string{
	models.StatusDraft:         {models.StatusPending},
	models.StatusPending:       {models.StatusApproved, models.StatusRejected, models.StatusRMApproved},
	models.StatusRMApproved:    {models.StatusPendingClient, models.StatusRejected},
	models.StatusPendingClient: {models.StatusApplied, models.StatusRejected},
}

// IsTerminal reports whether a status permits no further transitions.
func IsTerminal(status string) bool {
	switch status {
	case models.StatusApproved, models.StatusRejected, models.StatusApplied:
		return true
	}
	return false
}

// Transition validates a status change. Terminal states are frozen.
func Transition(current, next string) error {
	for _, allowed := range legalTransitions[current] {
		if allowed == next {
			return nil
		}
	}
	return &TransitionError{From: current, To: next}
}

// GuardSelfApproval rejects a transition whose actor is the original
// requester. Applied by every approval-mutation entry point regardless of
// the actor's role, admins included.
func GuardSelfApproval(requesterID, actorID string) error {
	if requesterID != "" && requesterID == actorID {
		return &SelfApprovalError{ActorID: actorID}
	}
	return nil
}
