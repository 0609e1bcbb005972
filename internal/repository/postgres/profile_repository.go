package postgres

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/belovedly/backend/internal/domain"
	"github.com/belovedly/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	query := `
		INSERT INTO profiles (
			id, first_name, last_name, birth_date, bio, church, denomination,
			interests, ministry_interests, location_lat, location_lon,
			profile_completed, is_online, last_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.FirstName, profile.LastName, profile.BirthDate,
		profile.Bio, profile.Church, profile.Denomination,
		pq.Array(profile.Interests), pq.Array(profile.MinistryInterests),
		profile.LocationLat, profile.LocationLon,
		profile.ProfileCompleted, profile.IsOnline, profile.LastActive,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		SELECT id, first_name, last_name, birth_date, bio, church, denomination,
		       interests, ministry_interests, location_lat, location_lon,
		       profile_completed, is_online, last_active, created_at, updated_at
		FROM profiles WHERE id = $1
	`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID, &profile.FirstName, &profile.LastName, &profile.BirthDate,
		&profile.Bio, &profile.Church, &profile.Denomination,
		pq.Array(&profile.Interests), pq.Array(&profile.MinistryInterests),
		&profile.LocationLat, &profile.LocationLon,
		&profile.ProfileCompleted, &profile.IsOnline, &profile.LastActive,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET first_name = $1, last_name = $2, birth_date = $3, bio = $4,
		    church = $5, denomination = $6, interests = $7, ministry_interests = $8,
		    location_lat = $9, location_lon = $10,
		    profile_completed = $11, is_online = $12, last_active = $13,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $14
		RETURNING updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.FirstName, profile.LastName, profile.BirthDate, profile.Bio,
		profile.Church, profile.Denomination,
		pq.Array(profile.Interests), pq.Array(profile.MinistryInterests),
		profile.LocationLat, profile.LocationLon,
		profile.ProfileCompleted, profile.IsOnline, profile.LastActive,
		profile.ID,
	).Scan(&profile.UpdatedAt)
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM profiles WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) SearchCandidates(ctx context.Context, excludedIDs []string, cursor string, limit int) ([]*domain.Profile, string, error) {
	query := `
		SELECT id, first_name, last_name, birth_date, bio, church, denomination,
		       interests, ministry_interests, location_lat, location_lon,
		       profile_completed, is_online, last_active, created_at, updated_at
		FROM profiles
		WHERE profile_completed = true AND is_online = true
	`
	args := []interface{}{}
	argCount := 1

	if len(excludedIDs) > 0 {
		query += fmt.Sprintf(" AND NOT (id = ANY($%d))", argCount)
		args = append(args, pq.Array(excludedIDs))
		argCount++
	}

	if cursor != "" {
		createdAt, id, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", err
		}
		query += fmt.Sprintf(" AND (created_at, id) < ($%d, $%d)", argCount, argCount+1)
		args = append(args, createdAt, id)
		argCount += 2
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", argCount)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		var profile domain.Profile
		if err := rows.Scan(
			&profile.ID, &profile.FirstName, &profile.LastName, &profile.BirthDate,
			&profile.Bio, &profile.Church, &profile.Denomination,
			pq.Array(&profile.Interests), pq.Array(&profile.MinistryInterests),
			&profile.LocationLat, &profile.LocationLon,
			&profile.ProfileCompleted, &profile.IsOnline, &profile.LastActive,
			&profile.CreatedAt, &profile.UpdatedAt,
		); err != nil {
			return nil, "", err
		}
		profiles = append(profiles, &profile)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(profiles) == limit {
		last := profiles[len(profiles)-1]
		nextCursor = encodeCursor(last.CreatedAt, last.ID)
	}
	return profiles, nextCursor, nil
}

// Cursor is an opaque keyset token: created_at and id of the last row.
func encodeCursor(createdAt time.Time, id string) string {
	raw := createdAt.UTC().Format(time.RFC3339Nano) + "|" + id
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (time.Time, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid cursor: %w", err)
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, "", fmt.Errorf("invalid cursor format")
	}
	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid cursor timestamp: %w", err)
	}
	return createdAt, parts[1], nil
}
