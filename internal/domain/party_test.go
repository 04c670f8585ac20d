package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"partyup/pkg/errors"
)

func testParty(lookingFor int, memberIDs ...string) *Party {
	members := make([]User, 0, len(memberIDs))
	for _, id := range memberIDs {
		members = append(members, User{ID: id, Username: "user-" + id})
	}
	return &Party{
		ID:         "party-1",
		Name:       "Raid Night",
		Leader:     members[0],
		Members:    members,
		LookingFor: lookingFor,
		Date:       time.Now().Add(24 * time.Hour),
		Details:    "bring snacks",
	}
}

func TestOpenings(t *testing.T) {
	tests := []struct {
		name         string
		lookingFor   int
		memberIDs    []string
		wantRaw      int
		wantDisplay  int
		wantFilled   bool
		wantExactFit bool
	}{
		{
			name:        "leader only",
			lookingFor:  3,
			memberIDs:   []string{"leader"},
			wantRaw:     3,
			wantDisplay: 3,
		},
		{
			name:        "partially filled",
			lookingFor:  3,
			memberIDs:   []string{"leader", "m1"},
			wantRaw:     2,
			wantDisplay: 2,
		},
		{
			name:         "exactly filled",
			lookingFor:   2,
			memberIDs:    []string{"leader", "m1", "m2"},
			wantRaw:      0,
			wantDisplay:  0,
			wantFilled:   true,
			wantExactFit: true,
		},
		{
			name:        "overfull after lookingFor edit keeps raw negative",
			lookingFor:  1,
			memberIDs:   []string{"leader", "m1", "m2"},
			wantRaw:     -1,
			wantDisplay: 0,
			wantFilled:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParty(tt.lookingFor, tt.memberIDs...)
			assert.Equal(t, tt.wantRaw, p.Openings())
			assert.Equal(t, tt.wantDisplay, p.DisplayOpenings())
			assert.Equal(t, tt.wantFilled, p.IsFilled())
			assert.Equal(t, tt.wantExactFit, p.IsExactlyFilled())
		})
	}
}

func TestCheckJoin(t *testing.T) {
	t.Run("open party accepts a new member", func(t *testing.T) {
		p := testParty(2, "leader", "m1")
		assert.NoError(t, p.CheckJoin("m2"))
		assert.True(t, p.CanJoin("m2"))
	})

	t.Run("existing member is rejected", func(t *testing.T) {
		p := testParty(2, "leader", "m1")
		err := p.CheckJoin("m1")
		assert.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		assert.True(t, ok)
		assert.Equal(t, errors.ErrorTypeConflict, appErr.Type)
	})

	t.Run("leader is rejected as already joined", func(t *testing.T) {
		p := testParty(2, "leader")
		assert.Error(t, p.CheckJoin("leader"))
	})

	t.Run("filled party is rejected with capacity error", func(t *testing.T) {
		p := testParty(1, "leader", "m1")
		err := p.CheckJoin("m2")
		assert.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		assert.True(t, ok)
		assert.Equal(t, errors.ErrorTypeCapacity, appErr.Type)
	})

	t.Run("overfull party is rejected with capacity error", func(t *testing.T) {
		p := testParty(1, "leader", "m1", "m2")
		err := p.CheckJoin("m3")
		assert.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		assert.True(t, ok)
		assert.Equal(t, errors.ErrorTypeCapacity, appErr.Type)
	})
}

func TestCheckLeave(t *testing.T) {
	t.Run("member may leave", func(t *testing.T) {
		p := testParty(3, "leader", "m1")
		assert.NoError(t, p.CheckLeave("m1"))
	})

	t.Run("leader may not leave", func(t *testing.T) {
		p := testParty(3, "leader", "m1")
		err := p.CheckLeave("leader")
		assert.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		assert.True(t, ok)
		assert.Equal(t, errors.ErrorTypeAuthorization, appErr.Type)
	})

	t.Run("non-member may not leave", func(t *testing.T) {
		p := testParty(3, "leader", "m1")
		err := p.CheckLeave("stranger")
		assert.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		assert.True(t, ok)
		assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	})
}
