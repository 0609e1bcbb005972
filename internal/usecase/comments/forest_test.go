package comments

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/belovedly/backend/internal/domain"
)

func buildForest(t *testing.T) []domain.Comment {
	t.Helper()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Comment{
		{
			ID: "c1", AuthorID: "u1", Content: "first", CreatedAt: base,
			Likes: 2, LikedBy: []string{"u2", "u3"},
			Replies: []domain.Comment{
				{
					ID: "c1a", AuthorID: "u2", Content: "nested", CreatedAt: base.Add(time.Minute),
					ParentID: strPtr("c1"),
					Replies: []domain.Comment{
						{ID: "c1a1", AuthorID: "u3", Content: "deep", CreatedAt: base.Add(2 * time.Minute), ParentID: strPtr("c1a")},
					},
				},
				{ID: "c1b", AuthorID: "u3", Content: "sibling", CreatedAt: base.Add(3 * time.Minute), ParentID: strPtr("c1"), Likes: 5, LikedBy: []string{"u1", "u2", "u4", "u5", "u6"}},
			},
		},
		{ID: "c2", AuthorID: "u2", Content: "second", CreatedAt: base.Add(time.Hour), Likes: 1, LikedBy: []string{"u1"}},
	}
}

func strPtr(s string) *string { return &s }

func cloneForest(t *testing.T, forest []domain.Comment) []domain.Comment {
	t.Helper()
	data, err := json.Marshal(forest)
	if err != nil {
		t.Fatalf("marshal forest: %v", err)
	}
	var out []domain.Comment
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal forest: %v", err)
	}
	return out
}

func TestFindComment_AnyDepth(t *testing.T) {
	forest := buildForest(t)

	for _, id := range []string{"c1", "c1a", "c1a1", "c1b", "c2"} {
		found := findComment(forest, id)
		if found == nil || found.ID != id {
			t.Errorf("findComment(%q) failed", id)
		}
	}
	if findComment(forest, "missing") != nil {
		t.Error("findComment must return nil for an unknown id")
	}
}

func TestAddReply_KnownParentAppends(t *testing.T) {
	forest := buildForest(t)
	before := countComments(forest)

	reply := domain.Comment{ID: "new", AuthorID: "u9", Content: "hi", ParentID: strPtr("c1a")}
	forest = addReply(forest, reply)

	if got := countComments(forest); got != before+1 {
		t.Fatalf("expected %d comments, got %d", before+1, got)
	}
	parent := findComment(forest, "c1a")
	if len(parent.Replies) != 2 || parent.Replies[1].ID != "new" {
		t.Error("reply must append at the end of its parent's children")
	}
}

func TestAddReply_UnknownParentDemotesToRoot(t *testing.T) {
	forest := buildForest(t)

	reply := domain.Comment{ID: "orphan", AuthorID: "u9", Content: "hi", ParentID: strPtr("no-such-id")}
	forest = addReply(forest, reply)

	if forest[0].ID != "orphan" {
		t.Fatal("orphaned reply must become the newest root comment")
	}
	if forest[0].ParentID != nil {
		t.Error("demoted reply must have its parent reference cleared")
	}
}

func TestAddReply_RootInsertsAtFront(t *testing.T) {
	forest := buildForest(t)
	forest = addReply(forest, domain.Comment{ID: "root", AuthorID: "u9", Content: "hi"})

	if forest[0].ID != "root" {
		t.Error("root comments insert at the front")
	}
	if forest[1].ID != "c1" || forest[2].ID != "c2" {
		t.Error("existing roots must keep their order")
	}
}

func TestToggleLike_Involutive(t *testing.T) {
	forest := buildForest(t)
	original := cloneForest(t, forest)

	for _, id := range []string{"c1", "c1a1", "c2"} {
		if !toggleLike(forest, id, "u7") {
			t.Fatalf("toggleLike(%q) did not find the comment", id)
		}
		if !toggleLike(forest, id, "u7") {
			t.Fatalf("second toggleLike(%q) did not find the comment", id)
		}
	}

	if !reflect.DeepEqual(forest, original) {
		t.Error("toggling a like twice must restore the original forest")
	}
}

func TestToggleLike_AddAndRemove(t *testing.T) {
	forest := buildForest(t)

	toggleLike(forest, "c1a1", "u7")
	deep := findComment(forest, "c1a1")
	if deep.Likes != 1 || !deep.IsLikedBy("u7") {
		t.Error("first toggle must add the like")
	}

	// Existing liker unlikes
	toggleLike(forest, "c1", "u2")
	top := findComment(forest, "c1")
	if top.Likes != 1 || top.IsLikedBy("u2") {
		t.Error("toggle by an existing liker must remove the like")
	}

	if toggleLike(forest, "missing", "u7") {
		t.Error("toggleLike on an unknown comment must report not found")
	}
}

func TestDeleteComment_RemovesSubtree(t *testing.T) {
	forest := buildForest(t)

	forest, ok := deleteComment(forest, "c1a")
	if !ok {
		t.Fatal("expected c1a to be found")
	}
	// c1a and its nested reply c1a1 are both gone
	if findComment(forest, "c1a") != nil || findComment(forest, "c1a1") != nil {
		t.Error("deleting a comment must remove its whole subtree")
	}
	if got := countComments(forest); got != 3 {
		t.Errorf("expected 3 comments after subtree delete, got %d", got)
	}

	forest, ok = deleteComment(forest, "c2")
	if !ok || findComment(forest, "c2") != nil {
		t.Error("deleting a root comment failed")
	}

	if _, ok := deleteComment(forest, "missing"); ok {
		t.Error("deleting an unknown comment must report not found")
	}
}

func TestSortComments_RecursiveAndPure(t *testing.T) {
	forest := buildForest(t)
	original := cloneForest(t, forest)

	sorted := SortComments(forest, domain.SortMostLiked)

	if sorted[0].ID != "c1" || sorted[1].ID != "c2" {
		t.Errorf("most_liked top level wrong: got %s, %s", sorted[0].ID, sorted[1].ID)
	}
	// The comparator applies inside subtrees too: c1b (5 likes) before c1a (0)
	if sorted[0].Replies[0].ID != "c1b" {
		t.Error("most_liked must reorder replies recursively")
	}

	if !reflect.DeepEqual(forest, original) {
		t.Error("sorting must not mutate the input forest")
	}
}

func TestSortComments_Options(t *testing.T) {
	forest := buildForest(t)

	tests := []struct {
		option domain.CommentSortOption
		first  string
	}{
		{domain.SortNewest, "c2"},
		{domain.SortOldest, "c1"},
		{domain.SortMostLiked, "c1"},
		{domain.SortMostReplies, "c1"},
	}
	for _, tt := range tests {
		sorted := SortComments(forest, tt.option)
		if sorted[0].ID != tt.first {
			t.Errorf("%s: expected %s first, got %s", tt.option, tt.first, sorted[0].ID)
		}
	}
}

func TestSortComments_Stable(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	forest := []domain.Comment{
		{ID: "a", CreatedAt: base, Likes: 3},
		{ID: "b", CreatedAt: base, Likes: 3},
		{ID: "c", CreatedAt: base, Likes: 3},
	}
	sorted := SortComments(forest, domain.SortMostLiked)
	for i, id := range []string{"a", "b", "c"} {
		if sorted[i].ID != id {
			t.Fatalf("equal-key comments must keep their order, position %d changed", i)
		}
	}
}

func TestForest_JSONRoundTrip(t *testing.T) {
	forest := buildForest(t)

	data, err := json.Marshal(forest)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded []domain.Comment
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(forest, decoded) {
		t.Error("forest must survive a JSON round trip unchanged")
	}
}
