package domain

import "time"

// User is a registered player referenced by parties and comments
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserProfile holds the identity extracted from a validated bearer token.
// Token issuance lives with the external auth collaborator; this is all
// the backend ever sees of it.
type UserProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}
