package repository

import (
	"context"

	"github.com/belovedly/backend/internal/domain"
)

type InteractionRepository interface {
	Create(ctx context.Context, interaction *domain.Interaction) error
	GetByUsers(ctx context.Context, actorID, targetID string) (*domain.Interaction, error)
	// GetActorTargets returns the ids of every user the actor has already
	// interacted with, regardless of kind.
	GetActorTargets(ctx context.Context, actorID string) ([]string, error)
	// HasLike reports whether a plain like from actor toward target exists.
	HasLike(ctx context.Context, actorID, targetID string) (bool, error)
}
