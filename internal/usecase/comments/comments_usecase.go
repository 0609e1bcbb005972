package comments

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/belovedly/backend/internal/domain"
	"github.com/belovedly/backend/internal/storage"
	"github.com/google/uuid"
)

const (
	commentsKeyPrefix  = "post_comments_"
	sortKeyPrefix      = "comment_sort_"
	collapsedKeyPrefix = "collapsed_comments_"
)

type CommentsUseCase struct {
	kv      storage.KVStore
	backups *storage.BackupStore

	editWindow   time.Duration
	maxViewDepth int

	now func() time.Time
}

func NewCommentsUseCase(kv storage.KVStore, backups *storage.BackupStore, editWindow time.Duration, maxViewDepth int) *CommentsUseCase {
	return &CommentsUseCase{
		kv:           kv,
		backups:      backups,
		editWindow:   editWindow,
		maxViewDepth: maxViewDepth,
		now:          time.Now,
	}
}

// MaxViewDepth is the rendering depth clients should clamp reply nesting to.
// It bounds display only, never the stored tree.
func (uc *CommentsUseCase) MaxViewDepth() int {
	return uc.maxViewDepth
}

// LoadComments returns the stored forest for a post, unsorted.
func (uc *CommentsUseCase) LoadComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	data, err := uc.kv.GetBytes(ctx, commentsKeyPrefix+postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var forest []domain.Comment
	if err := json.Unmarshal(data, &forest); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return forest, nil
}

// GetComments returns the forest sorted by the given option, or by the
// post's stored sort preference when option is empty.
func (uc *CommentsUseCase) GetComments(ctx context.Context, postID string, option domain.CommentSortOption) ([]domain.Comment, error) {
	forest, err := uc.LoadComments(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !option.Valid() {
		option = uc.GetSortOption(ctx, postID)
	}
	return SortComments(forest, option), nil
}

// AddReplyRequest carries a new comment or reply.
type AddReplyRequest struct {
	Content  string  `json:"content" binding:"required,max=2000"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

// AddReply inserts a new comment into the post's forest and persists it.
// An unknown parent id demotes the reply to a root comment rather than
// failing.
func (uc *CommentsUseCase) AddReply(ctx context.Context, postID, authorID, authorName string, req *AddReplyRequest) (*domain.Comment, error) {
	forest, err := uc.LoadComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	reply := domain.Comment{
		ID:         uuid.NewString(),
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    req.Content,
		CreatedAt:  uc.now(),
		ParentID:   req.ParentID,
	}

	forest = addReply(forest, reply)
	if err := uc.saveComments(ctx, postID, forest); err != nil {
		return nil, err
	}

	saved := findComment(forest, reply.ID)
	return saved, nil
}

// ToggleLike flips userID's like on the comment. A missing comment is a
// silent no-op.
func (uc *CommentsUseCase) ToggleLike(ctx context.Context, postID, commentID, userID string) error {
	forest, err := uc.LoadComments(ctx, postID)
	if err != nil {
		return err
	}
	if !toggleLike(forest, commentID, userID) {
		return nil
	}
	return uc.saveComments(ctx, postID, forest)
}

// EditComment updates a top-level comment's content within the edit window.
// A missing comment is a silent no-op; an expired window is surfaced.
func (uc *CommentsUseCase) EditComment(ctx context.Context, postID, commentID, newContent string) error {
	forest, err := uc.LoadComments(ctx, postID)
	if err != nil {
		return err
	}

	// Editing is supported for top-level comments only
	for i := range forest {
		if forest[i].ID != commentID {
			continue
		}
		now := uc.now()
		if !forest[i].CanEdit(now, uc.editWindow) {
			return domain.ErrEditWindowExpired
		}
		forest[i].Content = newContent
		forest[i].LastEditedAt = &now
		return uc.saveComments(ctx, postID, forest)
	}
	return nil
}

// DeleteComment removes the comment and its whole subtree. Only the author
// may delete; a missing comment is a silent no-op.
func (uc *CommentsUseCase) DeleteComment(ctx context.Context, postID, commentID, requesterID string) error {
	forest, err := uc.LoadComments(ctx, postID)
	if err != nil {
		return err
	}

	comment := findComment(forest, commentID)
	if comment == nil {
		return nil
	}
	if comment.AuthorID != requesterID {
		return domain.ErrNotCommentAuthor
	}

	forest, _ = deleteComment(forest, commentID)
	return uc.saveComments(ctx, postID, forest)
}

// RestoreFromBackup wholesale replaces the post's forest with the most
// recent backup snapshot. It returns nil, nil when no backup exists.
func (uc *CommentsUseCase) RestoreFromBackup(ctx context.Context, postID string) ([]domain.Comment, error) {
	data, err := uc.backups.Read(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var forest []domain.Comment
	if err := json.Unmarshal(data, &forest); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}

	if err := uc.kv.SetBytes(ctx, commentsKeyPrefix+postID, data); err != nil {
		return nil, fmt.Errorf("failed to restore comments: %w", err)
	}
	return forest, nil
}

// GetSortOption returns the post's stored sort preference, defaulting to
// newest.
func (uc *CommentsUseCase) GetSortOption(ctx context.Context, postID string) domain.CommentSortOption {
	val, err := uc.kv.GetString(ctx, sortKeyPrefix+postID)
	if err != nil {
		return domain.SortNewest
	}
	option := domain.CommentSortOption(val)
	if !option.Valid() {
		return domain.SortNewest
	}
	return option
}

// SetSortOption stores the post's sort preference.
func (uc *CommentsUseCase) SetSortOption(ctx context.Context, postID string, option domain.CommentSortOption) error {
	if !option.Valid() {
		return fmt.Errorf("unknown sort option: %s", option)
	}
	return uc.kv.SetString(ctx, sortKeyPrefix+postID, string(option))
}

// ToggleCollapsed flips the collapsed state of a comment for a user and
// returns the new state.
func (uc *CommentsUseCase) ToggleCollapsed(ctx context.Context, userID, commentID string) (bool, error) {
	ids, err := uc.collapsedIDs(ctx, userID)
	if err != nil {
		return false, err
	}

	collapsed := true
	for i, id := range ids {
		if id == commentID {
			ids = append(ids[:i], ids[i+1:]...)
			collapsed = false
			break
		}
	}
	if collapsed {
		ids = append(ids, commentID)
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return false, err
	}
	if err := uc.kv.SetBytes(ctx, collapsedKeyPrefix+userID, data); err != nil {
		return false, fmt.Errorf("failed to save collapsed state: %w", err)
	}
	return collapsed, nil
}

// IsCollapsed reports whether the user collapsed the comment.
func (uc *CommentsUseCase) IsCollapsed(ctx context.Context, userID, commentID string) (bool, error) {
	ids, err := uc.collapsedIDs(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == commentID {
			return true, nil
		}
	}
	return false, nil
}

func (uc *CommentsUseCase) collapsedIDs(ctx context.Context, userID string) ([]string, error) {
	data, err := uc.kv.GetBytes(ctx, collapsedKeyPrefix+userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load collapsed state: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode collapsed state: %w", err)
	}
	return ids, nil
}

// saveComments persists the full forest and keeps a best-effort file backup.
func (uc *CommentsUseCase) saveComments(ctx context.Context, postID string, forest []domain.Comment) error {
	data, err := json.Marshal(forest)
	if err != nil {
		return fmt.Errorf("failed to encode comments: %w", err)
	}
	if err := uc.kv.SetBytes(ctx, commentsKeyPrefix+postID, data); err != nil {
		return fmt.Errorf("failed to save comments: %w", err)
	}

	// Backup is best-effort; a failed backup never fails the mutation
	if uc.backups != nil {
		if err := uc.backups.Write(postID, data); err != nil {
			fmt.Printf("failed to back up comments for post %s: %v\n", postID, err)
		}
	}
	return nil
}
