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

var ErrJobNotFound = errors.New("job not found")

type Job struct {
	ID               uuid.UUID
	Title            string
	Company          string
	Location         string
	Description      string
	EmploymentModes  []string
	JobTypes         []string
	ExperienceLevels []string
	RequiredLevel    *proficiency.Level
	PostedBy         *uuid.UUID
	IsActive         bool
	CreatedAt        time.Time
}

// JobRequiredSkill is one entry of a job's required-skill list.
type JobRequiredSkill struct {
	JobID     uuid.UUID
	SkillID   uuid.UUID
	SkillName string
}

type JobRepository interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	ListActive(ctx context.Context, limit, offset int) ([]Job, error)
	Create(ctx context.Context, j Job, requiredSkillIDs []uuid.UUID) (Job, error)

	RequiredSkillsByJobID(ctx context.Context, jobID uuid.UUID) ([]JobRequiredSkill, error)
	RequiredSkillsByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]JobRequiredSkill, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, title, company, location, description, employment_modes, job_types,
	experience_levels, required_skill_level, posted_by, is_active, created_at`

func (r *PostgresJobRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)

	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrJobNotFound
		}
		return Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ListActive(ctx context.Context, limit, offset int) ([]Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE is_active
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, j Job, requiredSkillIDs []uuid.UUID) (Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}

	var requiredLevel *string
	if j.RequiredLevel != nil {
		s := string(*j.RequiredLevel)
		requiredLevel = &s
	}

	err := database.WithinTx(ctx, r.db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO jobs (id, title, company, location, description, employment_modes,
			                   job_types, experience_levels, required_skill_level, posted_by, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true)`,
			j.ID, j.Title, j.Company, j.Location, j.Description, j.EmploymentModes,
			j.JobTypes, j.ExperienceLevels, requiredLevel, j.PostedBy,
		)
		if err != nil {
			return err
		}
		for _, skillID := range requiredSkillIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO job_required_skills (job_id, skill_id) VALUES ($1, $2)
				 ON CONFLICT DO NOTHING`,
				j.ID, skillID,
			); err != nil {
				if isForeignKeyViolation(err) {
					return ErrSkillNotFound
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Job{}, err
	}

	return r.GetByID(ctx, j.ID)
}

func (r *PostgresJobRepository) RequiredSkillsByJobID(ctx context.Context, jobID uuid.UUID) ([]JobRequiredSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT rs.job_id, rs.skill_id, s.name
		 FROM job_required_skills rs
		 JOIN skills s ON s.id = rs.skill_id
		 WHERE rs.job_id = $1`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobRequiredSkill, 0)
	for rows.Next() {
		var rsk JobRequiredSkill
		if err := rows.Scan(&rsk.JobID, &rsk.SkillID, &rsk.SkillName); err != nil {
			return nil, err
		}
		out = append(out, rsk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) RequiredSkillsByJobIDs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]JobRequiredSkill, error) {
	out := make(map[uuid.UUID][]JobRequiredSkill, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT rs.job_id, rs.skill_id, s.name
		 FROM job_required_skills rs
		 JOIN skills s ON s.id = rs.skill_id
		 WHERE rs.job_id = ANY($1)`,
		jobIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rsk JobRequiredSkill
		if err := rows.Scan(&rsk.JobID, &rsk.SkillID, &rsk.SkillName); err != nil {
			return nil, err
		}
		out[rsk.JobID] = append(out[rsk.JobID], rsk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type jobScanner interface {
	Scan(dest ...any) error
}

func scanJob(sc jobScanner) (Job, error) {
	var j Job
	var requiredLevel *string
	err := sc.Scan(
		&j.ID, &j.Title, &j.Company, &j.Location, &j.Description, &j.EmploymentModes,
		&j.JobTypes, &j.ExperienceLevels, &requiredLevel, &j.PostedBy, &j.IsActive, &j.CreatedAt,
	)
	if err != nil {
		return Job{}, err
	}
	if requiredLevel != nil {
		lvl := proficiency.Level(*requiredLevel)
		j.RequiredLevel = &lvl
	}
	return j, nil
}
