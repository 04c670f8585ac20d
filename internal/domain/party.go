package domain

import (
	"time"

	"partyup/pkg/errors"
)

// Party is a scheduled group activity with a capacity target and roster.
// The leader is always present in Members, so the roster size is at least 1.
type Party struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Game       Game      `json:"game"`
	Leader     User      `json:"leader"`
	Members    []User    `json:"members"`
	LookingFor int       `json:"lookingFor"`
	Date       time.Time `json:"date"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Openings returns the raw number of unclaimed roster slots:
// lookingFor minus the members beyond the leader. The value goes negative
// when lookingFor was edited below the current net membership; callers that
// render it should clamp via DisplayOpenings.
func (p *Party) Openings() int {
	return p.LookingFor - (len(p.Members) - 1)
}

// DisplayOpenings clamps negative openings to zero for presentation
func (p *Party) DisplayOpenings() int {
	if openings := p.Openings(); openings > 0 {
		return openings
	}
	return 0
}

// IsFilled reports whether the party has no openings left
func (p *Party) IsFilled() bool {
	return p.Openings() <= 0
}

// IsExactlyFilled reports whether net membership equals lookingFor.
// The list filter hides exact-fill only; an overfull roster (possible after
// a lookingFor edit) stays visible.
func (p *Party) IsExactlyFilled() bool {
	return len(p.Members)-1 == p.LookingFor
}

// HasMember reports whether the user is already on the roster
func (p *Party) HasMember(userID string) bool {
	for _, member := range p.Members {
		if member.ID == userID {
			return true
		}
	}
	return false
}

// CanJoin reports whether the user is eligible to join
func (p *Party) CanJoin(userID string) bool {
	return p.CheckJoin(userID) == nil
}

// CheckJoin validates a join attempt against the roster rules
func (p *Party) CheckJoin(userID string) error {
	if p.HasMember(userID) {
		return errors.NewConflictError("you have already joined this party")
	}
	if p.IsFilled() {
		return errors.NewCapacityError("this party is already filled")
	}
	return nil
}

// CheckLeave validates a leave attempt. The leader cannot leave their own
// party; they delete it (or hand it off) instead.
func (p *Party) CheckLeave(userID string) error {
	if userID == p.Leader.ID {
		return errors.NewAuthorizationError("the party leader cannot leave their own party")
	}
	if !p.HasMember(userID) {
		return errors.NewValidationError("you are not a member of this party")
	}
	return nil
}
