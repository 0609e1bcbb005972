package domain

import (
	"testing"
	"time"
)

func TestCommentCanEdit(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c := &Comment{CreatedAt: created}
	window := 24 * time.Hour

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"just created", created, true},
		{"inside window", created.Add(23 * time.Hour), true},
		{"at the boundary", created.Add(24 * time.Hour), false},
		{"past window", created.Add(25 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CanEdit(tt.now, window); got != tt.want {
				t.Errorf("CanEdit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommentIsEdited(t *testing.T) {
	c := &Comment{}
	if c.IsEdited() {
		t.Error("a fresh comment is not edited")
	}
	now := time.Now()
	c.LastEditedAt = &now
	if !c.IsEdited() {
		t.Error("a stamped comment reads as edited")
	}
}

func TestCommentSortOptionValid(t *testing.T) {
	for _, o := range []CommentSortOption{SortNewest, SortOldest, SortMostLiked, SortMostReplies} {
		if !o.Valid() {
			t.Errorf("%s must be valid", o)
		}
	}
	if CommentSortOption("sideways").Valid() || CommentSortOption("").Valid() {
		t.Error("unknown options must be invalid")
	}
}
