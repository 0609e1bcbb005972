package comments

import (
	"sort"

	"github.com/belovedly/backend/internal/domain"
)

// findComment depth-first locates a comment anywhere in the forest and
// returns a pointer into it, so mutations land in place.
func findComment(forest []domain.Comment, id string) *domain.Comment {
	for i := range forest {
		if forest[i].ID == id {
			return &forest[i]
		}
		if found := findComment(forest[i].Replies, id); found != nil {
			return found
		}
	}
	return nil
}

// addReply inserts a reply into the forest. A reply with a known parent is
// appended to that parent's children; a reply whose parent cannot be found
// anywhere is demoted to a root comment with its parent reference cleared.
// Root comments insert at the front (newest first); replies append at the end
// of their parent's list.
func addReply(forest []domain.Comment, reply domain.Comment) []domain.Comment {
	if reply.ParentID != nil {
		if parent := findComment(forest, *reply.ParentID); parent != nil {
			parent.Replies = append(parent.Replies, reply)
			return forest
		}
		// Parent wasn't found, add as top-level comment
		reply.ParentID = nil
	}
	return append([]domain.Comment{reply}, forest...)
}

// toggleLike flips userID's like on the comment and reports whether the
// comment was found. Calling twice reverts the forest to its original state.
func toggleLike(forest []domain.Comment, commentID, userID string) bool {
	comment := findComment(forest, commentID)
	if comment == nil {
		return false
	}
	if comment.IsLikedBy(userID) {
		comment.LikedBy = removeString(comment.LikedBy, userID)
		comment.Likes--
	} else {
		comment.LikedBy = append(comment.LikedBy, userID)
		comment.Likes++
	}
	return true
}

func removeString(items []string, target string) []string {
	out := items[:0]
	for _, item := range items {
		if item != target {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// deleteComment removes the comment and its entire subtree from the forest
// and reports whether it was found.
func deleteComment(forest []domain.Comment, commentID string) ([]domain.Comment, bool) {
	for i := range forest {
		if forest[i].ID == commentID {
			return append(forest[:i:i], forest[i+1:]...), true
		}
	}
	for i := range forest {
		if replies, ok := deleteComment(forest[i].Replies, commentID); ok {
			forest[i].Replies = replies
			return forest, true
		}
	}
	return forest, false
}

// SortComments orders the forest by the given option, re-applying the same
// comparator recursively to every subtree. The sort is stable.
func SortComments(forest []domain.Comment, option domain.CommentSortOption) []domain.Comment {
	sorted := make([]domain.Comment, len(forest))
	copy(sorted, forest)

	switch option {
	case domain.SortOldest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})
	case domain.SortMostLiked:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Likes > sorted[j].Likes
		})
	case domain.SortMostReplies:
		sort.SliceStable(sorted, func(i, j int) bool {
			return len(sorted[i].Replies) > len(sorted[j].Replies)
		})
	default: // newest
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}

	for i := range sorted {
		sorted[i].Replies = SortComments(sorted[i].Replies, option)
	}
	return sorted
}

// countComments returns the total number of nodes in the forest.
func countComments(forest []domain.Comment) int {
	count := len(forest)
	for i := range forest {
		count += countComments(forest[i].Replies)
	}
	return count
}
