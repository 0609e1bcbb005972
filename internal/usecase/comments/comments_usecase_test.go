package comments

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/belovedly/backend/internal/domain"
	"github.com/belovedly/backend/internal/storage"
)

func newTestUseCase(t *testing.T) (*CommentsUseCase, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	backups, err := storage.NewBackupStore(t.TempDir(), 5)
	if err != nil {
		t.Fatalf("create backup store: %v", err)
	}
	uc := NewCommentsUseCase(kv, backups, 24*time.Hour, 5)
	return uc, kv
}

func TestAddReply_PersistsAndReturnsSaved(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	saved, err := uc.AddReply(ctx, "post1", "u1", "Anna", &AddReplyRequest{Content: "hello"})
	if err != nil {
		t.Fatalf("AddReply failed: %v", err)
	}
	if saved == nil || saved.ID == "" {
		t.Fatal("saved comment must carry a generated id")
	}
	if saved.AuthorID != "u1" || saved.AuthorName != "Anna" || saved.Content != "hello" {
		t.Error("saved comment fields wrong")
	}

	forest, err := uc.LoadComments(ctx, "post1")
	if err != nil {
		t.Fatalf("LoadComments failed: %v", err)
	}
	if len(forest) != 1 || forest[0].ID != saved.ID {
		t.Error("comment must be persisted")
	}
}

func TestAddReply_NestingThroughService(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	root, err := uc.AddReply(ctx, "post1", "u1", "Anna", &AddReplyRequest{Content: "root"})
	if err != nil {
		t.Fatalf("AddReply failed: %v", err)
	}
	child, err := uc.AddReply(ctx, "post1", "u2", "Ben", &AddReplyRequest{Content: "reply", ParentID: &root.ID})
	if err != nil {
		t.Fatalf("AddReply reply failed: %v", err)
	}

	forest, _ := uc.LoadComments(ctx, "post1")
	if len(forest) != 1 {
		t.Fatalf("expected 1 root, got %d", len(forest))
	}
	if len(forest[0].Replies) != 1 || forest[0].Replies[0].ID != child.ID {
		t.Error("reply must nest under its parent")
	}

	// Unknown parent demotes to a new root
	bogus := "00000000-0000-0000-0000-000000000000"
	orphan, err := uc.AddReply(ctx, "post1", "u3", "Cleo", &AddReplyRequest{Content: "lost", ParentID: &bogus})
	if err != nil {
		t.Fatalf("AddReply orphan failed: %v", err)
	}
	if orphan.ParentID != nil {
		t.Error("orphaned reply must lose its parent reference")
	}
	forest, _ = uc.LoadComments(ctx, "post1")
	if len(forest) != 2 || forest[0].ID != orphan.ID {
		t.Error("orphaned reply must become the newest root")
	}
}

func TestEditComment_WindowEnforced(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return current }

	saved, err := uc.AddReply(ctx, "post1", "u1", "Anna", &AddReplyRequest{Content: "before"})
	if err != nil {
		t.Fatalf("AddReply failed: %v", err)
	}

	current = current.Add(23 * time.Hour)
	if err := uc.EditComment(ctx, "post1", saved.ID, "after"); err != nil {
		t.Fatalf("edit inside the window failed: %v", err)
	}
	forest, _ := uc.LoadComments(ctx, "post1")
	if forest[0].Content != "after" {
		t.Error("edit must update the content")
	}
	if !forest[0].IsEdited() {
		t.Error("edit must stamp the last-edited time")
	}

	current = current.Add(2 * time.Hour) // 25h after creation
	if err := uc.EditComment(ctx, "post1", saved.ID, "too late"); !errors.Is(err, domain.ErrEditWindowExpired) {
		t.Fatalf("expected ErrEditWindowExpired, got %v", err)
	}
	forest, _ = uc.LoadComments(ctx, "post1")
	if forest[0].Content != "after" {
		t.Error("an expired edit must leave the content untouched")
	}

	// Unknown comment is a silent no-op
	if err := uc.EditComment(ctx, "post1", "missing", "x"); err != nil {
		t.Errorf("editing an unknown comment must not error, got %v", err)
	}
}

func TestDeleteComment_AuthorOnly(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	root, _ := uc.AddReply(ctx, "post1", "u1", "Anna", &AddReplyRequest{Content: "root"})
	if _, err := uc.AddReply(ctx, "post1", "u2", "Ben", &AddReplyRequest{Content: "reply", ParentID: &root.ID}); err != nil {
		t.Fatalf("AddReply failed: %v", err)
	}

	if err := uc.DeleteComment(ctx, "post1", root.ID, "u2"); !errors.Is(err, domain.ErrNotCommentAuthor) {
		t.Fatalf("expected ErrNotCommentAuthor, got %v", err)
	}
	forest, _ := uc.LoadComments(ctx, "post1")
	if countComments(forest) != 2 {
		t.Error("a rejected delete must leave the forest unchanged")
	}

	if err := uc.DeleteComment(ctx, "post1", root.ID, "u1"); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	forest, _ = uc.LoadComments(ctx, "post1")
	if countComments(forest) != 0 {
		t.Error("author delete must remove the comment and its replies")
	}

	if err := uc.DeleteComment(ctx, "post1", "missing", "u1"); err != nil {
		t.Errorf("deleting an unknown comment must not error, got %v", err)
	}
}

func TestToggleLike_MissingCommentIsNoOp(t *testing.T) {
	uc, kv := newTestUseCase(t)
	ctx := context.Background()

	saved, _ := uc.AddReply(ctx, "post1", "u1", "Anna", &AddReplyRequest{Content: "hi"})
	stored, _ := kv.GetBytes(ctx, commentsKeyPrefix+"post1")

	if err := uc.ToggleLike(ctx, "post1", "missing", "u2"); err != nil {
		t.Fatalf("ToggleLike on unknown comment errored: %v", err)
	}
	after, _ := kv.GetBytes(ctx, commentsKeyPrefix+"post1")
	if !reflect.DeepEqual(stored, after) {
		t.Error("a missed toggle must not rewrite the stored forest")
	}

	if err := uc.ToggleLike(ctx, "post1", saved.ID, "u2"); err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	forest, _ := uc.LoadComments(ctx, "post1")
	if forest[0].Likes != 1 || !forest[0].IsLikedBy("u2") {
		t.Error("toggle must persist the like")
	}
}

func TestGetComments_UsesStoredSortPreference(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return current }

	old, _ := uc.AddReply(ctx, "post1", "u1", "Anna", &AddReplyRequest{Content: "old"})
	current = current.Add(time.Hour)
	recent, _ := uc.AddReply(ctx, "post1", "u2", "Ben", &AddReplyRequest{Content: "recent"})

	// Default preference is newest first
	forest, err := uc.GetComments(ctx, "post1", "")
	if err != nil {
		t.Fatalf("GetComments failed: %v", err)
	}
	if forest[0].ID != recent.ID {
		t.Error("default order must be newest first")
	}

	if err := uc.SetSortOption(ctx, "post1", domain.SortOldest); err != nil {
		t.Fatalf("SetSortOption failed: %v", err)
	}
	forest, _ = uc.GetComments(ctx, "post1", "")
	if forest[0].ID != old.ID {
		t.Error("stored preference must apply when no option is given")
	}

	// An explicit option overrides the stored preference
	forest, _ = uc.GetComments(ctx, "post1", domain.SortNewest)
	if forest[0].ID != recent.ID {
		t.Error("explicit option must win over the stored preference")
	}

	if err := uc.SetSortOption(ctx, "post1", "sideways"); err == nil {
		t.Error("unknown sort options must be rejected")
	}
}

func TestRestoreFromBackup(t *testing.T) {
	uc, kv := newTestUseCase(t)
	ctx := context.Background()

	// No backup yet
	forest, err := uc.RestoreFromBackup(ctx, "post1")
	if err != nil || forest != nil {
		t.Fatalf("expected nil, nil without a backup, got %v, %v", forest, err)
	}

	first, _ := uc.AddReply(ctx, "post1", "u1", "Anna", &AddReplyRequest{Content: "one"})
	if _, err := uc.AddReply(ctx, "post1", "u2", "Ben", &AddReplyRequest{Content: "two"}); err != nil {
		t.Fatalf("AddReply failed: %v", err)
	}

	// Simulate primary-store loss
	if err := kv.Delete(ctx, commentsKeyPrefix+"post1"); err != nil {
		t.Fatalf("delete key: %v", err)
	}
	if got, _ := uc.LoadComments(ctx, "post1"); got != nil {
		t.Fatal("precondition: store must be empty")
	}

	restored, err := uc.RestoreFromBackup(ctx, "post1")
	if err != nil {
		t.Fatalf("RestoreFromBackup failed: %v", err)
	}
	if countComments(restored) != 2 || findComment(restored, first.ID) == nil {
		t.Error("restore must bring back the latest snapshot")
	}

	// Restore writes through to the primary store
	forest, _ = uc.LoadComments(ctx, "post1")
	if countComments(forest) != 2 {
		t.Error("restored forest must be persisted")
	}
}

func TestToggleCollapsed(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	collapsed, err := uc.ToggleCollapsed(ctx, "u1", "c1")
	if err != nil {
		t.Fatalf("ToggleCollapsed failed: %v", err)
	}
	if !collapsed {
		t.Error("first toggle must collapse")
	}
	if got, _ := uc.IsCollapsed(ctx, "u1", "c1"); !got {
		t.Error("IsCollapsed must reflect the toggle")
	}

	// Per-user state
	if got, _ := uc.IsCollapsed(ctx, "u2", "c1"); got {
		t.Error("collapsed state must be scoped to the user")
	}

	collapsed, _ = uc.ToggleCollapsed(ctx, "u1", "c1")
	if collapsed {
		t.Error("second toggle must expand")
	}
	if got, _ := uc.IsCollapsed(ctx, "u1", "c1"); got {
		t.Error("expanded comment must not read as collapsed")
	}
}
