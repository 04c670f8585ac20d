package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func makeComments(base time.Time) []Comment {
	return []Comment{
		{ID: "c1", Text: "first", Likes: 2, CreatedAt: base},
		{ID: "c2", Text: "second", Likes: 5, CreatedAt: base.Add(time.Minute)},
		{ID: "c3", Text: "third", Likes: 2, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "c4", Text: "fourth", Likes: 0, CreatedAt: base.Add(3 * time.Minute)},
	}
}

func commentIDs(comments []Comment) []string {
	out := make([]string, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.ID)
	}
	return out
}

func TestSortComments(t *testing.T) {
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		style CommentSort
		want  []string
	}{
		{"most recent is descending createdAt", SortMostRecent, []string{"c4", "c3", "c2", "c1"}},
		{"oldest is ascending createdAt", SortOldest, []string{"c1", "c2", "c3", "c4"}},
		{"most liked is descending likes", SortMostLiked, []string{"c2", "c1", "c3", "c4"}},
		{"unknown style falls back to most recent", CommentSort("bogus"), []string{"c4", "c3", "c2", "c1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comments := makeComments(base)
			SortComments(comments, tt.style)
			assert.Equal(t, tt.want, commentIDs(comments))
		})
	}
}

func TestSortCommentsStability(t *testing.T) {
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	// c1 and c3 tie on likes; most-liked must keep their input order
	comments := makeComments(base)
	SortComments(comments, SortMostLiked)
	assert.Equal(t, []string{"c2", "c1", "c3", "c4"}, commentIDs(comments))

	// Same tie with the inputs reversed keeps the reversed order
	reversed := []Comment{comments[2], comments[1]} // c3 then c1, both 2 likes
	SortComments(reversed, SortMostLiked)
	assert.Equal(t, []string{"c3", "c1"}, commentIDs(reversed))
}

func TestPaginateDisplay(t *testing.T) {
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	comments := makeComments(base)

	assert.Len(t, PaginateDisplay(comments, DisplayLimit, false), 3)
	assert.Len(t, PaginateDisplay(comments, DisplayLimit, true), 4)
	assert.Len(t, PaginateDisplay(comments[:2], DisplayLimit, false), 2)
	assert.Empty(t, PaginateDisplay(nil, DisplayLimit, false))
}

func TestParseCommentSort(t *testing.T) {
	assert.Equal(t, SortMostRecent, ParseCommentSort("recent"))
	assert.Equal(t, SortOldest, ParseCommentSort("oldest"))
	assert.Equal(t, SortMostLiked, ParseCommentSort("liked"))
	assert.Equal(t, SortMostRecent, ParseCommentSort(""))
}
