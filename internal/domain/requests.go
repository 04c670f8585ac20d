package domain

import "time"

// PartyRequest is the body of POST /api/parties and PATCH /api/parties/{id}.
// Edits send the full field set, matching the create shape.
type PartyRequest struct {
	Name       string    `json:"name"`
	Game       Game      `json:"game"`
	LookingFor int       `json:"lookingFor"`
	Date       time.Time `json:"date"`
	Details    string    `json:"details"`
}

// CommentRequest is the body of POST /api/comments. Exactly one of PartyID
// and GameID identifies the context the comment attaches to.
type CommentRequest struct {
	PartyID string `json:"partyId,omitempty"`
	GameID  int64  `json:"gameId,omitempty"`
	Text    string `json:"text"`
}
