package repository

import (
	"context"
	"fmt"

	"talentbridge/internal/database"

	"github.com/google/uuid"
)

// DerivedFields are the machine-generated columns attached to skills and
// jobs. They are only ever written through the enrichment pipeline, never
// by request handlers.
type DerivedFields struct {
	Summary  string
	Keywords string
	Vector   []float32
}

type DerivedFieldRepository interface {
	// UpdateSkill overwrites the derived columns of a skill row. The write
	// touches only ai_* columns, so it can never re-trigger enrichment.
	UpdateSkill(ctx context.Context, skillID uuid.UUID, f DerivedFields) error
	UpdateJob(ctx context.Context, jobID uuid.UUID, f DerivedFields) error
}

type PostgresDerivedFieldRepository struct {
	db database.DB
}

func NewPostgresDerivedFieldRepository(db database.DB) *PostgresDerivedFieldRepository {
	return &PostgresDerivedFieldRepository{db: db}
}

func (r *PostgresDerivedFieldRepository) UpdateSkill(ctx context.Context, skillID uuid.UUID, f DerivedFields) error {
	return r.update(ctx, "skills", skillID, f)
}

func (r *PostgresDerivedFieldRepository) UpdateJob(ctx context.Context, jobID uuid.UUID, f DerivedFields) error {
	return r.update(ctx, "jobs", jobID, f)
}

func (r *PostgresDerivedFieldRepository) update(ctx context.Context, table string, id uuid.UUID, f DerivedFields) error {
	_, err := r.db.Exec(ctx,
		fmt.Sprintf(`UPDATE %s SET ai_summary = $1, ai_keywords = $2, ai_vector = $3 WHERE id = $4`, table),
		f.Summary, f.Keywords, f.Vector, id,
	)
	return err
}
