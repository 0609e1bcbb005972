package repository

import (
	"context"

	"github.com/belovedly/backend/internal/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id string) (*domain.Match, error)
	GetByUsers(ctx context.Context, user1ID, user2ID string) (*domain.Match, error)
	GetUserMatches(ctx context.Context, userID string, limit, offset int) ([]*domain.Match, error)
	UpdateStatus(ctx context.Context, id string, status domain.MatchStatus) error
	Delete(ctx context.Context, id string) error
}
