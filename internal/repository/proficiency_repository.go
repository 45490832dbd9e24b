package repository

import (
	"context"
	"errors"
	"time"

	"talentbridge/internal/database"
	"talentbridge/internal/domain/proficiency"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProficiencyNotFound = errors.New("proficiency record not found")

// ProficiencyRecord is one (user, skill) ledger row.
type ProficiencyRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	SkillID    uuid.UUID
	SkillName  string
	Percentage float64
	Level      proficiency.Level
	UpdatedAt  time.Time
}

// ProgressSample is one append-only audit entry of the proficiency history.
type ProgressSample struct {
	UserID     uuid.UUID
	SkillID    uuid.UUID
	Percentage float64
	RecordedAt time.Time
}

type ProficiencyRepository interface {
	// Upsert writes the ledger row for (user, skill). The level is derived
	// from the clamped percentage before storage, and the statement is a
	// single INSERT ... ON CONFLICT so concurrent writers for the same key
	// serialize at the row.
	Upsert(ctx context.Context, q database.Querier, userID, skillID uuid.UUID, percentage float64) (ProficiencyRecord, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]ProficiencyRecord, error)
	FindByUserAndSkill(ctx context.Context, userID, skillID uuid.UUID) (ProficiencyRecord, error)

	AppendProgress(ctx context.Context, q database.Querier, userID, skillID uuid.UUID, percentage float64) error
	ListProgress(ctx context.Context, userID, skillID uuid.UUID) ([]ProgressSample, error)
}

type PostgresProficiencyRepository struct {
	db database.DB
}

func NewPostgresProficiencyRepository(db database.DB) *PostgresProficiencyRepository {
	return &PostgresProficiencyRepository{db: db}
}

func (r *PostgresProficiencyRepository) Upsert(ctx context.Context, q database.Querier, userID, skillID uuid.UUID, percentage float64) (ProficiencyRecord, error) {
	if q == nil {
		q = r.db
	}

	pct := proficiency.Clamp(percentage)
	level := proficiency.LevelFor(pct)

	row := q.QueryRow(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, proficiency_percentage, level, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (user_id, skill_id)
		 DO UPDATE SET proficiency_percentage = EXCLUDED.proficiency_percentage,
		               level = EXCLUDED.level,
		               updated_at = now()
		 RETURNING id, user_id, skill_id, proficiency_percentage, level, updated_at`,
		uuid.New(), userID, skillID, pct, string(level),
	)

	var rec ProficiencyRecord
	var lvl string
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.SkillID, &rec.Percentage, &lvl, &rec.UpdatedAt); err != nil {
		return ProficiencyRecord{}, err
	}
	rec.Level = proficiency.Level(lvl)
	return rec, nil
}

func (r *PostgresProficiencyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]ProficiencyRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT us.id, us.user_id, us.skill_id, s.name, us.proficiency_percentage, us.level, us.updated_at
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProficiencyRecord, 0)
	for rows.Next() {
		var rec ProficiencyRecord
		var lvl string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.SkillID, &rec.SkillName, &rec.Percentage, &lvl, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		rec.Level = proficiency.Level(lvl)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProficiencyRepository) FindByUserAndSkill(ctx context.Context, userID, skillID uuid.UUID) (ProficiencyRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT us.id, us.user_id, us.skill_id, s.name, us.proficiency_percentage, us.level, us.updated_at
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1 AND us.skill_id = $2`,
		userID, skillID,
	)

	var rec ProficiencyRecord
	var lvl string
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.SkillID, &rec.SkillName, &rec.Percentage, &lvl, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProficiencyRecord{}, ErrProficiencyNotFound
		}
		return ProficiencyRecord{}, err
	}
	rec.Level = proficiency.Level(lvl)
	return rec, nil
}

func (r *PostgresProficiencyRepository) AppendProgress(ctx context.Context, q database.Querier, userID, skillID uuid.UUID, percentage float64) error {
	if q == nil {
		q = r.db
	}
	_, err := q.Exec(ctx,
		`INSERT INTO user_skill_progress (user_id, skill_id, proficiency_percentage, recorded_at)
		 VALUES ($1, $2, $3, now())`,
		userID, skillID, proficiency.Clamp(percentage),
	)
	return err
}

func (r *PostgresProficiencyRepository) ListProgress(ctx context.Context, userID, skillID uuid.UUID) ([]ProgressSample, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, skill_id, proficiency_percentage, recorded_at
		 FROM user_skill_progress
		 WHERE user_id = $1 AND skill_id = $2
		 ORDER BY recorded_at DESC`,
		userID, skillID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProgressSample, 0)
	for rows.Next() {
		var p ProgressSample
		if err := rows.Scan(&p.UserID, &p.SkillID, &p.Percentage, &p.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
