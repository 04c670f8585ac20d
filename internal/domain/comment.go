package domain

import (
	"sort"
	"time"
)

// Comment is attached to either a party or a game catalog entry
type Comment struct {
	ID        string    `json:"id"`
	PartyID   string    `json:"partyId,omitempty"`
	GameID    int64     `json:"gameId,omitempty"`
	User      User      `json:"user"`
	Text      string    `json:"text"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentSort selects the ordering for comment list views
type CommentSort string

const (
	SortMostRecent CommentSort = "recent"
	SortOldest     CommentSort = "oldest"
	SortMostLiked  CommentSort = "liked"
)

// DisplayLimit is the default number of comments shown before "show all"
const DisplayLimit = 3

// SortComments orders comments by the given style. The sort is stable:
// comments with equal keys keep their prior relative order.
func SortComments(comments []Comment, style CommentSort) {
	switch style {
	case SortOldest:
		sort.SliceStable(comments, func(i, j int) bool {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		})
	case SortMostLiked:
		sort.SliceStable(comments, func(i, j int) bool {
			return comments[i].Likes > comments[j].Likes
		})
	default:
		sort.SliceStable(comments, func(i, j int) bool {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		})
	}
}

// PaginateDisplay returns the first limit comments unless showAll is set
func PaginateDisplay(comments []Comment, limit int, showAll bool) []Comment {
	if showAll || len(comments) <= limit {
		return comments
	}
	return comments[:limit]
}

// ParseCommentSort maps a query-string value to a CommentSort, defaulting
// to most recent
func ParseCommentSort(value string) CommentSort {
	switch CommentSort(value) {
	case SortOldest, SortMostLiked:
		return CommentSort(value)
	default:
		return SortMostRecent
	}
}

// LikeToggleResult reports the outcome of a like toggle
type LikeToggleResult struct {
	CommentID string `json:"commentId"`
	Liked     bool   `json:"liked"`
	Likes     int    `json:"likes"`
}
