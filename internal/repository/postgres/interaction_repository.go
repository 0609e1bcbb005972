package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/belovedly/backend/internal/domain"
	"github.com/belovedly/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type interactionRepository struct {
	db *sqlx.DB
}

func NewInteractionRepository(db *sqlx.DB) repository.InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	// One interaction per (actor, target) pair
	existing, err := r.GetByUsers(ctx, interaction.ActorID, interaction.TargetID)
	if err == nil && existing != nil {
		return domain.ErrInteractionExists
	}

	if interaction.ID == "" {
		interaction.ID = uuid.NewString()
	}

	query := `
		INSERT INTO interactions (id, actor_id, target_id, kind)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query, interaction.ID, interaction.ActorID, interaction.TargetID, interaction.Kind).
		Scan(&interaction.CreatedAt)
}

func (r *interactionRepository) GetByUsers(ctx context.Context, actorID, targetID string) (*domain.Interaction, error) {
	var interaction domain.Interaction
	query := `SELECT * FROM interactions WHERE actor_id = $1 AND target_id = $2`
	err := r.db.GetContext(ctx, &interaction, query, actorID, targetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInteractionNotFound
		}
		return nil, err
	}
	return &interaction, nil
}

func (r *interactionRepository) GetActorTargets(ctx context.Context, actorID string) ([]string, error) {
	var targets []string
	query := `SELECT target_id FROM interactions WHERE actor_id = $1`
	err := r.db.SelectContext(ctx, &targets, query, actorID)
	return targets, err
}

func (r *interactionRepository) HasLike(ctx context.Context, actorID, targetID string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM interactions
			WHERE actor_id = $1 AND target_id = $2 AND kind = 'like'
		)
	`
	err := r.db.QueryRowContext(ctx, query, actorID, targetID).Scan(&exists)
	return exists, err
}
