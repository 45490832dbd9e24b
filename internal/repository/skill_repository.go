package repository

import (
	"context"
	"errors"
	"time"

	"talentbridge/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSkillNotFound = errors.New("skill not found")

type Skill struct {
	ID              uuid.UUID
	CategoryID      *uuid.UUID
	CategoryName    string
	Name            string
	Difficulty      string
	PopularityScore float64
	AISummary       string
	AIKeywords      string
	CreatedAt       time.Time
}

type SkillRepository interface {
	ListSkills(ctx context.Context) ([]Skill, error)
	FindByID(ctx context.Context, id uuid.UUID) (Skill, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, s Skill) (Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

const skillColumns = `s.id, s.category_id, COALESCE(c.name, ''), s.name, s.difficulty, s.popularity_score,
	COALESCE(s.ai_summary, ''), COALESCE(s.ai_keywords, ''), s.created_at`

func (r *PostgresSkillRepository) ListSkills(ctx context.Context) ([]Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+skillColumns+`
		 FROM skills s
		 LEFT JOIN skill_categories c ON c.id = s.category_id
		 ORDER BY s.name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Skill, 0)
	for rows.Next() {
		var s Skill
		if err := scanSkill(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) FindByID(ctx context.Context, id uuid.UUID) (Skill, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+skillColumns+`
		 FROM skills s
		 LEFT JOIN skill_categories c ON c.id = s.category_id
		 WHERE s.id = $1`,
		id,
	)

	var s Skill
	if err := scanSkill(row, &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Skill{}, ErrSkillNotFound
		}
		return Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSkillRepository) Create(ctx context.Context, s Skill) (Skill, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, category_id, name, difficulty)
		 VALUES ($1, $2, $3, $4)`,
		s.ID, s.CategoryID, s.Name, s.Difficulty,
	)
	if err != nil {
		return Skill{}, err
	}
	return r.FindByID(ctx, s.ID)
}

type skillScanner interface {
	Scan(dest ...any) error
}

func scanSkill(sc skillScanner, s *Skill) error {
	return sc.Scan(
		&s.ID, &s.CategoryID, &s.CategoryName, &s.Name, &s.Difficulty,
		&s.PopularityScore, &s.AISummary, &s.AIKeywords, &s.CreatedAt,
	)
}
