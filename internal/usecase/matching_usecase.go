package usecase

import (
	"context"
	"errors"

	"talentbridge/internal/domain/matching"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("job not found")

type MatchingUsecase interface {
	CalculateMatch(ctx context.Context, userID, jobID uuid.UUID) (matching.Result, error)
}

type Matching struct {
	jobs        repository.JobRepository
	proficiency repository.ProficiencyRepository
	profiles    repository.ProfileRepository
}

func NewMatchingUsecase(jobs repository.JobRepository, proficiency repository.ProficiencyRepository, profiles repository.ProfileRepository) *Matching {
	return &Matching{jobs: jobs, proficiency: proficiency, profiles: profiles}
}

// CalculateMatch scores one candidate against one job. An empty ledger is a
// valid profile: every required skill simply contributes zero.
func (u *Matching) CalculateMatch(ctx context.Context, userID, jobID uuid.UUID) (matching.Result, error) {
	if userID == uuid.Nil {
		return matching.Result{}, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return matching.Result{}, ErrJobNotFound
	}

	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return matching.Result{}, ErrInternal
	}
	if !exists {
		return matching.Result{}, ErrJobNotFound
	}

	profile, err := u.loadProfile(ctx, userID)
	if err != nil {
		return matching.Result{}, ErrInternal
	}

	reqs, err := u.jobs.RequiredSkillsByJobID(ctx, jobID)
	if err != nil {
		return matching.Result{}, ErrInternal
	}

	return matching.Score(profile, toRequirements(reqs)), nil
}

func (u *Matching) loadProfile(ctx context.Context, userID uuid.UUID) (matching.CandidateProfile, error) {
	records, err := u.proficiency.FindByUserID(ctx, userID)
	if err != nil {
		return matching.CandidateProfile{}, err
	}
	signals, err := u.profiles.Signals(ctx, userID)
	if err != nil {
		return matching.CandidateProfile{}, err
	}

	skills := make([]matching.SkillProficiency, 0, len(records))
	for _, rec := range records {
		skills = append(skills, matching.SkillProficiency{
			SkillID:    rec.SkillID,
			SkillName:  rec.SkillName,
			Percentage: rec.Percentage,
			Level:      rec.Level,
		})
	}

	return matching.CandidateProfile{
		Skills:        skills,
		HasExperience: signals.HasExperience,
		HasResume:     signals.HasResume,
	}, nil
}

func toRequirements(reqs []repository.JobRequiredSkill) []matching.Requirement {
	out := make([]matching.Requirement, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, matching.Requirement{
			SkillID:   r.SkillID,
			SkillName: r.SkillName,
		})
	}
	return out
}
