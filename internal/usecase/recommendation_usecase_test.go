package usecase

import (
	"context"
	"testing"
	"time"

	"talentbridge/internal/domain/matching"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
)

type mockJobRepo struct {
	jobs      []repository.Job
	reqs      map[uuid.UUID][]repository.JobRequiredSkill
	exists    bool
	existsErr error
}

func (m mockJobRepo) ExistsByID(context.Context, uuid.UUID) (bool, error) {
	return m.exists, m.existsErr
}
func (m mockJobRepo) GetByID(context.Context, uuid.UUID) (repository.Job, error) {
	return repository.Job{}, repository.ErrJobNotFound
}
func (m mockJobRepo) ListActive(context.Context, int, int) ([]repository.Job, error) {
	return m.jobs, nil
}
func (m mockJobRepo) Create(context.Context, repository.Job, []uuid.UUID) (repository.Job, error) {
	return repository.Job{}, nil
}
func (m mockJobRepo) RequiredSkillsByJobID(_ context.Context, id uuid.UUID) ([]repository.JobRequiredSkill, error) {
	return m.reqs[id], nil
}
func (m mockJobRepo) RequiredSkillsByJobIDs(context.Context, []uuid.UUID) (map[uuid.UUID][]repository.JobRequiredSkill, error) {
	return m.reqs, nil
}

type mockProfileRepo struct {
	signals repository.ProfileSignals
}

func (m mockProfileRepo) Signals(context.Context, uuid.UUID) (repository.ProfileSignals, error) {
	return m.signals, nil
}

func recommendationFixture(t *testing.T) (*Recommendations, []repository.Job, uuid.UUID) {
	t.Helper()

	goID := uuid.New()
	sqlID := uuid.New()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	// Three jobs: one fully matched, one half matched, one with no
	// requirements (which scores the skill component at 100).
	jobs := []repository.Job{
		{ID: uuid.New(), Title: "Go Backend", Company: "Acme", CreatedAt: base.Add(2 * time.Hour)},
		{ID: uuid.New(), Title: "Data Engineer", Company: "Globex", CreatedAt: base.Add(1 * time.Hour)},
		{ID: uuid.New(), Title: "Generalist", Company: "Initech", CreatedAt: base},
	}
	reqs := map[uuid.UUID][]repository.JobRequiredSkill{
		jobs[0].ID: {{JobID: jobs[0].ID, SkillID: goID, SkillName: "Go"}},
		jobs[1].ID: {
			{JobID: jobs[1].ID, SkillID: goID, SkillName: "Go"},
			{JobID: jobs[1].ID, SkillID: sqlID, SkillName: "SQL"},
		},
	}

	records := &mockProficiencyRepo{records: []repository.ProficiencyRecord{
		{SkillID: goID, SkillName: "Go", Percentage: 80},
	}}

	uc := NewRecommendationUsecase(
		mockJobRepo{jobs: jobs, reqs: reqs},
		records,
		mockProfileRepo{},
	)
	return uc, jobs, goID
}

func TestRecommendations_OrderedByFinalScore(t *testing.T) {
	uc, jobs, _ := recommendationFixture(t)

	items, err := uc.Recommendations(context.Background(), uuid.New(), RecommendationParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	// No-requirements job scores 100 on skills, the full match 80, the
	// half match 40.
	if items[0].JobID != jobs[2].ID || items[1].JobID != jobs[0].ID || items[2].JobID != jobs[1].ID {
		t.Fatalf("unexpected order: %v %v %v", items[0].Title, items[1].Title, items[2].Title)
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].Score.FinalScore < items[i].Score.FinalScore {
			t.Fatalf("items not sorted by final score")
		}
	}
}

func TestRecommendations_DeterministicAcrossRuns(t *testing.T) {
	uc, _, _ := recommendationFixture(t)

	first, err := uc.Recommendations(context.Background(), uuid.New(), RecommendationParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	for run := 0; run < 10; run++ {
		again, err := uc.Recommendations(context.Background(), uuid.New(), RecommendationParams{})
		if err != nil {
			t.Fatalf("run %d: unexpected err: %v", run, err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: length changed", run)
		}
		for i := range first {
			if again[i].JobID != first[i].JobID {
				t.Fatalf("run %d: order changed at %d", run, i)
			}
		}
	}
}

func TestRecommendations_FailedScoringRanksLast(t *testing.T) {
	uc, jobs, _ := recommendationFixture(t)

	uc.score = func(p matching.CandidateProfile, reqs []matching.Requirement) matching.Result {
		for _, r := range reqs {
			if r.SkillName == "SQL" {
				panic("scorer blew up")
			}
		}
		return matching.Score(p, reqs)
	}

	items, err := uc.Recommendations(context.Background(), uuid.New(), RecommendationParams{})
	if err != nil {
		t.Fatalf("one failing job must not fail the request: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	last := items[len(items)-1]
	if last.JobID != jobs[1].ID {
		t.Fatalf("expected the failed job last, got %v", last.Title)
	}
	if last.Score != nil {
		t.Fatalf("failed job must carry a nil score")
	}
	for _, it := range items[:len(items)-1] {
		if it.Score == nil {
			t.Fatalf("scored jobs must keep their results")
		}
	}
}

func TestRecommendations_TopKTruncation(t *testing.T) {
	var jobs []repository.Job
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		jobs = append(jobs, repository.Job{
			ID:        uuid.New(),
			Title:     "Job",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	uc := NewRecommendationUsecase(
		mockJobRepo{jobs: jobs, reqs: map[uuid.UUID][]repository.JobRequiredSkill{}},
		&mockProficiencyRepo{},
		mockProfileRepo{},
	)

	items, err := uc.Recommendations(context.Background(), uuid.New(), RecommendationParams{TopK: 5})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}

	items, err = uc.Recommendations(context.Background(), uuid.New(), RecommendationParams{TopK: 500})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 30 {
		t.Fatalf("top_k above the cap returns at most %d, got %d", maxTopK, len(items))
	}
}
