package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"talentbridge/internal/domain/matching"
	"talentbridge/internal/repository"
	"talentbridge/internal/worker"

	"github.com/google/uuid"
)

const (
	defaultTopK      = 20
	maxTopK          = 50
	candidateJobsCap = 200
	scoringWorkers   = 8
)

type RecommendationParams struct {
	TopK int
}

// RecommendationItem pairs a job with its match result. Score is nil when
// scoring that job failed; such items rank below every scored item.
type RecommendationItem struct {
	JobID     uuid.UUID
	Title     string
	Company   string
	Location  string
	CreatedAt time.Time
	Score     *matching.Result
}

type RecommendationUsecase interface {
	Recommendations(ctx context.Context, userID uuid.UUID, params RecommendationParams) ([]RecommendationItem, error)
}

type Recommendations struct {
	jobs        repository.JobRepository
	proficiency repository.ProficiencyRepository
	profiles    repository.ProfileRepository
	workers     int

	score func(matching.CandidateProfile, []matching.Requirement) matching.Result
}

func NewRecommendationUsecase(jobs repository.JobRepository, proficiency repository.ProficiencyRepository, profiles repository.ProfileRepository) *Recommendations {
	return &Recommendations{
		jobs:        jobs,
		proficiency: proficiency,
		profiles:    profiles,
		workers:     scoringWorkers,
		score:       matching.Score,
	}
}

// Recommendations scores the active job pool against the candidate in
// parallel and returns the top slice. The ordering is deterministic for a
// fixed input set regardless of which worker finishes first: final score
// descending, then newest job first, with unscored jobs at the end.
func (u *Recommendations) Recommendations(ctx context.Context, userID uuid.UUID, params RecommendationParams) ([]RecommendationItem, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	topK := params.TopK
	if topK <= 0 {
		topK = defaultTopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}

	m := &Matching{jobs: u.jobs, proficiency: u.proficiency, profiles: u.profiles}
	profile, err := m.loadProfile(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	jobs, err := u.jobs.ListActive(ctx, candidateJobsCap, 0)
	if err != nil {
		return nil, ErrInternal
	}
	if len(jobs) == 0 {
		return []RecommendationItem{}, nil
	}

	jobIDs := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		jobIDs = append(jobIDs, j.ID)
	}
	reqsByJob, err := u.jobs.RequiredSkillsByJobIDs(ctx, jobIDs)
	if err != nil {
		return nil, ErrInternal
	}

	items := make([]RecommendationItem, len(jobs))
	for i, j := range jobs {
		items[i] = RecommendationItem{
			JobID:     j.ID,
			Title:     j.Title,
			Company:   j.Company,
			Location:  j.Location,
			CreatedAt: j.CreatedAt,
		}
	}

	// Each task owns one index, so no locking is needed around items.
	pool := worker.NewPool(u.workers, len(jobs))
	results := pool.Run(ctx)
	for i := range jobs {
		i := i
		reqs := toRequirements(reqsByJob[jobs[i].ID])
		pool.Submit(func(context.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("scoring panicked: %v", r)
				}
			}()
			res := u.score(profile, reqs)
			items[i].Score = &res
			return nil
		})
	}
	pool.Close()
	for range results {
	}

	sort.SliceStable(items, func(a, b int) bool {
		sa, sb := items[a].Score, items[b].Score
		switch {
		case sa == nil && sb == nil:
			return items[a].CreatedAt.After(items[b].CreatedAt)
		case sa == nil:
			return false
		case sb == nil:
			return true
		}
		if sa.FinalScore != sb.FinalScore {
			return sa.FinalScore > sb.FinalScore
		}
		return items[a].CreatedAt.After(items[b].CreatedAt)
	})

	if len(items) > topK {
		items = items[:topK]
	}
	return items, nil
}
