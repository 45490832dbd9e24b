package repository

import (
	"context"
	"errors"

	"talentbridge/internal/database"
	"talentbridge/internal/domain/assessment"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrAssessmentNotFound = errors.New("assessment not found")

// AssessmentSummary is the listing row without questions.
type AssessmentSummary struct {
	ID              uuid.UUID
	SkillID         uuid.UUID
	SkillName       string
	Title           string
	Difficulty      string
	DurationMinutes int
	QuestionCount   int
}

type AssessmentRepository interface {
	List(ctx context.Context) ([]AssessmentSummary, error)
	// GetByID loads the assessment with all its questions.
	GetByID(ctx context.Context, id uuid.UUID) (assessment.Assessment, error)
}

type PostgresAssessmentRepository struct {
	db database.DB
}

func NewPostgresAssessmentRepository(db database.DB) *PostgresAssessmentRepository {
	return &PostgresAssessmentRepository{db: db}
}

func (r *PostgresAssessmentRepository) List(ctx context.Context) ([]AssessmentSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT t.id, t.skill_id, s.name, t.title, t.difficulty, t.duration_minutes,
		        (SELECT COUNT(*) FROM skill_questions q WHERE q.test_id = t.id)
		 FROM skill_tests t
		 JOIN skills s ON s.id = t.skill_id
		 ORDER BY s.name ASC, t.title ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AssessmentSummary, 0)
	for rows.Next() {
		var a AssessmentSummary
		if err := rows.Scan(&a.ID, &a.SkillID, &a.SkillName, &a.Title, &a.Difficulty, &a.DurationMinutes, &a.QuestionCount); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAssessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (assessment.Assessment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, skill_id, title, description, difficulty, duration_minutes, version, created_at
		 FROM skill_tests
		 WHERE id = $1`,
		id,
	)

	var a assessment.Assessment
	if err := row.Scan(&a.ID, &a.SkillID, &a.Title, &a.Description, &a.Difficulty, &a.DurationMinutes, &a.Version, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assessment.Assessment{}, ErrAssessmentNotFound
		}
		return assessment.Assessment{}, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, question_text, option_a, option_b, option_c, option_d, correct_option, marks
		 FROM skill_questions
		 WHERE test_id = $1
		 ORDER BY id ASC`,
		id,
	)
	if err != nil {
		return assessment.Assessment{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var q assessment.Question
		var correct string
		if err := rows.Scan(&q.ID, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &correct, &q.Marks); err != nil {
			return assessment.Assessment{}, err
		}
		q.Correct = assessment.Option(correct)
		a.Questions = append(a.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return assessment.Assessment{}, err
	}

	return a, nil
}
