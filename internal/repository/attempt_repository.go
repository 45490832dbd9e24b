package repository

import (
	"context"
	"errors"
	"time"

	"talentbridge/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrDuplicateAttempt = errors.New("attempt already exists for user and skill")
)

// AttemptResult is one immutable grading event. The table carries a UNIQUE
// (user_id, skill_id) constraint, which is the real enforcement of the
// one-attempt-per-skill invariant under concurrent submissions.
type AttemptResult struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	SkillID    uuid.UUID
	TestID     uuid.UUID
	Score      float64
	Percentage float64
	Passed     bool
	TakenAt    time.Time
}

type AttemptRepository interface {
	// Insert persists a new attempt. A second insert for the same
	// (user, skill) pair fails with ErrDuplicateAttempt and no side effects.
	Insert(ctx context.Context, q database.Querier, res AttemptResult) error
	FindByUserAndSkill(ctx context.Context, userID, skillID uuid.UUID) (AttemptResult, error)
}

type PostgresAttemptRepository struct {
	db database.DB
}

func NewPostgresAttemptRepository(db database.DB) *PostgresAttemptRepository {
	return &PostgresAttemptRepository{db: db}
}

func (r *PostgresAttemptRepository) Insert(ctx context.Context, q database.Querier, res AttemptResult) error {
	if q == nil {
		q = r.db
	}
	_, err := q.Exec(ctx,
		`INSERT INTO skill_test_results (id, user_id, skill_id, test_id, score, percentage, passed, taken_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		res.ID, res.UserID, res.SkillID, res.TestID, res.Score, res.Percentage, res.Passed, res.TakenAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateAttempt
		}
		return err
	}
	return nil
}

func (r *PostgresAttemptRepository) FindByUserAndSkill(ctx context.Context, userID, skillID uuid.UUID) (AttemptResult, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, skill_id, test_id, score, percentage, passed, taken_at
		 FROM skill_test_results
		 WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)

	var res AttemptResult
	if err := row.Scan(&res.ID, &res.UserID, &res.SkillID, &res.TestID, &res.Score, &res.Percentage, &res.Passed, &res.TakenAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AttemptResult{}, ErrAttemptNotFound
		}
		return AttemptResult{}, err
	}
	return res, nil
}
