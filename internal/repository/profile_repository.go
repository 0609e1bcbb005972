package repository

import (
	"context"

	"github.com/belovedly/backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	Delete(ctx context.Context, id string) error
	// SearchCandidates returns active, profile-complete candidates not in
	// excludedIDs, starting after the opaque cursor. The returned cursor is
	// empty when the result set is exhausted.
	SearchCandidates(ctx context.Context, excludedIDs []string, cursor string, limit int) ([]*domain.Profile, string, error)
}
