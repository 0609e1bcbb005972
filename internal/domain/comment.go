package domain

import "time"

// Comment is a node in a post's comment forest. Replies nest to arbitrary
// depth; rendering depth is capped by the client, not the data model.
type Comment struct {
	ID           string     `json:"id"`
	AuthorID     string     `json:"author_id"`
	AuthorName   string     `json:"author_name"`
	Content      string     `json:"content"`
	CreatedAt    time.Time  `json:"created_at"`
	Likes        int        `json:"likes"`
	LikedBy      []string   `json:"liked_by,omitempty"`
	Replies      []Comment  `json:"replies,omitempty"`
	ParentID     *string    `json:"parent_id,omitempty"`
	LastEditedAt *time.Time `json:"last_edited_at,omitempty"`
}

// IsEdited reports whether the comment was ever edited.
func (c *Comment) IsEdited() bool {
	return c.LastEditedAt != nil
}

// CanEdit reports whether the comment is still inside the edit window.
func (c *Comment) CanEdit(now time.Time, window time.Duration) bool {
	return now.Sub(c.CreatedAt) < window
}

// IsLikedBy reports whether userID is in the liked-by set.
func (c *Comment) IsLikedBy(userID string) bool {
	for _, id := range c.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// CommentSortOption selects the comparator applied to a comment forest.
type CommentSortOption string

const (
	SortNewest      CommentSortOption = "newest"
	SortOldest      CommentSortOption = "oldest"
	SortMostLiked   CommentSortOption = "most_liked"
	SortMostReplies CommentSortOption = "most_replies"
)

// Valid reports whether the option is a known sort option.
func (o CommentSortOption) Valid() bool {
	switch o {
	case SortNewest, SortOldest, SortMostLiked, SortMostReplies:
		return true
	}
	return false
}
