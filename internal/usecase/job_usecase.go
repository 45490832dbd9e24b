package usecase

import (
	"context"
	"errors"
	"strings"

	"talentbridge/internal/domain/identity"
	"talentbridge/internal/domain/proficiency"
	"talentbridge/internal/enrichment"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
)

type CreateJobInput struct {
	Title            string
	Company          string
	Location         string
	Description      string
	EmploymentModes  []string
	JobTypes         []string
	ExperienceLevels []string
	RequiredLevel    string
	RequiredSkillIDs []uuid.UUID
}

type ListJobsParams struct {
	Limit  int
	Offset int
}

type JobUsecase interface {
	ListJobs(ctx context.Context, params ListJobsParams) ([]repository.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (repository.Job, error)
	CreateJob(ctx context.Context, actorID uuid.UUID, role identity.Role, in CreateJobInput) (repository.Job, error)
}

type Jobs struct {
	jobs  repository.JobRepository
	guard *enrichment.Guard
}

func NewJobUsecase(jobs repository.JobRepository, guard *enrichment.Guard) *Jobs {
	return &Jobs{jobs: jobs, guard: guard}
}

func (u *Jobs) ListJobs(ctx context.Context, params ListJobsParams) ([]repository.Job, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	out, err := u.jobs.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Jobs) GetJob(ctx context.Context, id uuid.UUID) (repository.Job, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return repository.Job{}, ErrJobNotFound
		}
		return repository.Job{}, ErrInternal
	}
	return j, nil
}

// CreateJob is restricted to roles allowed to post. The derived fields are
// generated in the background after the primary write lands.
func (u *Jobs) CreateJob(ctx context.Context, actorID uuid.UUID, role identity.Role, in CreateJobInput) (repository.Job, error) {
	if actorID == uuid.Nil {
		return repository.Job{}, ErrUnauthorized
	}
	if !role.CanPostJobs() {
		return repository.Job{}, ErrForbidden
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Company) == "" {
		return repository.Job{}, ErrInvalidInput
	}

	job := repository.Job{
		Title:            strings.TrimSpace(in.Title),
		Company:          strings.TrimSpace(in.Company),
		Location:         strings.TrimSpace(in.Location),
		Description:      strings.TrimSpace(in.Description),
		EmploymentModes:  normalizeList(in.EmploymentModes),
		JobTypes:         normalizeList(in.JobTypes),
		ExperienceLevels: normalizeList(in.ExperienceLevels),
		PostedBy:         &actorID,
	}

	if lvl := strings.ToLower(strings.TrimSpace(in.RequiredLevel)); lvl != "" {
		level := proficiency.Level(lvl)
		if level.Rank() < 0 {
			return repository.Job{}, ErrInvalidInput
		}
		job.RequiredLevel = &level
	}

	created, err := u.jobs.Create(ctx, job, in.RequiredSkillIDs)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return repository.Job{}, ErrInvalidInput
		}
		return repository.Job{}, ErrInternal
	}

	if u.guard != nil {
		u.guard.WritePrimary(ctx, enrichment.Entity{
			Kind: enrichment.KindJob,
			ID:   created.ID,
			Text: created.Title + " at " + created.Company + "\n" + created.Description,
		})
	}
	return created, nil
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
