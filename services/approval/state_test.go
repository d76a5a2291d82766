package approval

import (
	"testing"

	"orgflow/models"

	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{name: "draft to pending", from: models.StatusDraft, to: models.StatusPending},
		{name: "pending to approved", from: models.StatusPending, to: models.StatusApproved},
		{name: "pending to rejected", from: models.StatusPending, to: models.StatusRejected},
		{name: "pending to rm_approved", from: models.StatusPending, to: models.StatusRMApproved},
		{name: "rm_approved to pending_client", from: models.StatusRMApproved, to: models.StatusPendingClient},
		{name: "rm_approved to rejected", from: models.StatusRMApproved, to: models.StatusRejected},
		{name: "pending_client to applied", from: models.StatusPendingClient, to: models.StatusApplied},
		{name: "pending_client to rejected", from: models.StatusPendingClient, to: models.StatusRejected},

		{name: "approved is frozen", from: models.StatusApproved, to: models.StatusPending, wantErr: true},
		{name: "rejected is frozen", from: models.StatusRejected, to: models.StatusApproved, wantErr: true},
		{name: "applied is frozen", from: models.StatusApplied, to: models.StatusPending, wantErr: true},
		{name: "pending cannot skip to applied", from: models.StatusPending, to: models.StatusApplied, wantErr: true},
		{name: "draft cannot jump to approved", from: models.StatusDraft, to: models.StatusApproved, wantErr: true},
		{name: "unknown status has no edges", from: "bogus", to: models.StatusApproved, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Transition(tt.from, tt.to)
			if tt.wantErr {
				var transitionErr *TransitionError
				assert.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, tt.from, transitionErr.From)
				assert.Equal(t, tt.to, transitionErr.To)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusApproved))
	assert.True(t, IsTerminal(models.StatusRejected))
	assert.True(t, IsTerminal(models.StatusApplied))
	assert.False(t, IsTerminal(models.StatusPending))
	assert.False(t, IsTerminal(models.StatusDraft))
	assert.False(t, IsTerminal(models.StatusRMApproved))
}

func TestGuardSelfApproval(t *testing.T) {
	err := GuardSelfApproval("emp-1", "emp-1")
	var selfErr *SelfApprovalError
	assert.ErrorAs(t, err, &selfErr)
	assert.Equal(t, "emp-1", selfErr.ActorID)

	assert.NoError(t, GuardSelfApproval("emp-1", "emp-2"))

	// An empty requester never matches; legacy records without a requester
	// id must not lock everyone out.
	assert.NoError(t, GuardSelfApproval("", ""))
}
