package repository

import (
	"context"

	"talentbridge/internal/database"

	"github.com/google/uuid"
)

// ProfileSignals are the coarse candidate signals the match scorer consumes.
// They are presence checks only; the scorer never reads profile content.
type ProfileSignals struct {
	HasExperience bool
	HasResume     bool
}

type ProfileRepository interface {
	Signals(ctx context.Context, userID uuid.UUID) (ProfileSignals, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) Signals(ctx context.Context, userID uuid.UUID) (ProfileSignals, error) {
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM experiences e WHERE e.user_id = $1),
		        EXISTS(SELECT 1 FROM profiles p
		               WHERE p.user_id = $1
		                 AND (COALESCE(p.resume_text, '') <> '' OR COALESCE(p.resume_file, '') <> ''))`,
		userID,
	)

	var s ProfileSignals
	if err := row.Scan(&s.HasExperience, &s.HasResume); err != nil {
		return ProfileSignals{}, err
	}
	return s, nil
}
