package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"talentbridge/internal/database"
	"talentbridge/internal/domain/assessment"
	"talentbridge/internal/domain/proficiency"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(context.Context, string, ...any) (int64, error)       { return 0, nil }
func (t *fakeTx) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not implemented")
}
func (t *fakeTx) QueryRow(context.Context, string, ...any) database.Row { return nil }
func (t *fakeTx) Commit(context.Context) error                          { t.committed = true; return nil }
func (t *fakeTx) Rollback(context.Context) error                        { t.rolledBack = true; return nil }

type fakeDB struct {
	tx *fakeTx
}

func (d *fakeDB) Exec(context.Context, string, ...any) (int64, error) { return 0, nil }
func (d *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("not implemented")
}
func (d *fakeDB) QueryRow(context.Context, string, ...any) database.Row { return nil }
func (d *fakeDB) Ping(context.Context) error                            { return nil }
func (d *fakeDB) Close() error                                          { return nil }
func (d *fakeDB) Begin(context.Context) (database.Tx, error) {
	d.tx = &fakeTx{}
	return d.tx, nil
}

type mockAssessmentRepo struct {
	a   assessment.Assessment
	err error
}

func (m mockAssessmentRepo) List(context.Context) ([]repository.AssessmentSummary, error) {
	return nil, nil
}
func (m mockAssessmentRepo) GetByID(context.Context, uuid.UUID) (assessment.Assessment, error) {
	return m.a, m.err
}

type mockAttemptRepo struct {
	prior     *repository.AttemptResult
	insertErr error
	inserted  []repository.AttemptResult
}

func (m *mockAttemptRepo) Insert(_ context.Context, _ database.Querier, res repository.AttemptResult) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, res)
	return nil
}

func (m *mockAttemptRepo) FindByUserAndSkill(context.Context, uuid.UUID, uuid.UUID) (repository.AttemptResult, error) {
	if m.prior == nil {
		return repository.AttemptResult{}, repository.ErrAttemptNotFound
	}
	return *m.prior, nil
}

type mockProficiencyRepo struct {
	upserts  []float64
	progress []float64
	records  []repository.ProficiencyRecord
}

func (m *mockProficiencyRepo) Upsert(_ context.Context, _ database.Querier, userID, skillID uuid.UUID, pct float64) (repository.ProficiencyRecord, error) {
	m.upserts = append(m.upserts, pct)
	return repository.ProficiencyRecord{
		UserID:     userID,
		SkillID:    skillID,
		Percentage: proficiency.Clamp(pct),
		Level:      proficiency.LevelFor(pct),
	}, nil
}

func (m *mockProficiencyRepo) FindByUserID(context.Context, uuid.UUID) ([]repository.ProficiencyRecord, error) {
	return m.records, nil
}

func (m *mockProficiencyRepo) FindByUserAndSkill(context.Context, uuid.UUID, uuid.UUID) (repository.ProficiencyRecord, error) {
	return repository.ProficiencyRecord{}, repository.ErrProficiencyNotFound
}

func (m *mockProficiencyRepo) AppendProgress(_ context.Context, _ database.Querier, _, _ uuid.UUID, pct float64) error {
	m.progress = append(m.progress, pct)
	return nil
}

func (m *mockProficiencyRepo) ListProgress(context.Context, uuid.UUID, uuid.UUID) ([]repository.ProgressSample, error) {
	return nil, nil
}

func fifteenQuestionAssessment(skillID uuid.UUID) assessment.Assessment {
	a := assessment.Assessment{
		ID:      uuid.New(),
		SkillID: skillID,
		Title:   "Go Fundamentals",
	}
	for i := 0; i < assessment.QuestionCount; i++ {
		a.Questions = append(a.Questions, assessment.Question{
			ID:      uuid.New(),
			Text:    "q",
			Correct: assessment.OptionA,
			Marks:   1,
		})
	}
	return a
}

func answersFor(a assessment.Assessment, correct int) map[uuid.UUID]assessment.Option {
	answers := make(map[uuid.UUID]assessment.Option, len(a.Questions))
	for i, q := range a.Questions {
		if i < correct {
			answers[q.ID] = q.Correct
		} else {
			answers[q.ID] = assessment.OptionB
		}
	}
	return answers
}

func TestAssessmentSubmit_Success(t *testing.T) {
	skillID := uuid.New()
	a := fifteenQuestionAssessment(skillID)
	db := &fakeDB{}
	attempts := &mockAttemptRepo{}
	records := &mockProficiencyRepo{}

	uc := NewAssessmentUsecase(db, mockAssessmentRepo{a: a}, attempts, records)
	uc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	res, err := uc.Submit(context.Background(), uuid.New(), a.ID, answersFor(a, 9))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Attempt.Percentage != 60.0 {
		t.Fatalf("expected percentage 60.0, got %v", res.Attempt.Percentage)
	}
	if !res.Attempt.Passed {
		t.Fatalf("expected attempt to pass at 60.0")
	}
	if res.Proficiency.Level != proficiency.LevelSkilled {
		t.Fatalf("expected skilled, got %v", res.Proficiency.Level)
	}
	if len(attempts.inserted) != 1 || len(records.upserts) != 1 || len(records.progress) != 1 {
		t.Fatalf("expected attempt, ledger and progress writes, got %d/%d/%d",
			len(attempts.inserted), len(records.upserts), len(records.progress))
	}
	if db.tx == nil || !db.tx.committed {
		t.Fatalf("expected the three writes to commit in one transaction")
	}
}

func TestAssessmentSubmit_SecondAttemptReturnsStoredResult(t *testing.T) {
	skillID := uuid.New()
	a := fifteenQuestionAssessment(skillID)
	prior := repository.AttemptResult{ID: uuid.New(), SkillID: skillID, Percentage: 73.33, Passed: true}
	attempts := &mockAttemptRepo{prior: &prior}

	uc := NewAssessmentUsecase(&fakeDB{}, mockAssessmentRepo{a: a}, attempts, &mockProficiencyRepo{})

	res, err := uc.Submit(context.Background(), uuid.New(), a.ID, answersFor(a, 15))
	if !errors.Is(err, ErrAlreadyAttempted) {
		t.Fatalf("expected ErrAlreadyAttempted, got %v", err)
	}
	if res.Attempt.ID != prior.ID {
		t.Fatalf("expected the stored attempt back")
	}
	if len(attempts.inserted) != 0 {
		t.Fatalf("repeat submission must not write")
	}
}

func TestAssessmentSubmit_WrongAnswerCountWritesNothing(t *testing.T) {
	skillID := uuid.New()
	a := fifteenQuestionAssessment(skillID)
	attempts := &mockAttemptRepo{}
	records := &mockProficiencyRepo{}

	uc := NewAssessmentUsecase(&fakeDB{}, mockAssessmentRepo{a: a}, attempts, records)

	answers := answersFor(a, 15)
	delete(answers, a.Questions[0].ID)

	_, err := uc.Submit(context.Background(), uuid.New(), a.ID, answers)
	if !errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
	if len(attempts.inserted) != 0 || len(records.upserts) != 0 || len(records.progress) != 0 {
		t.Fatalf("rejected submission must leave no writes")
	}
}

func TestAssessmentSubmit_LostRaceSurfacesWinner(t *testing.T) {
	skillID := uuid.New()
	a := fifteenQuestionAssessment(skillID)
	attempts := &mockAttemptRepo{insertErr: repository.ErrDuplicateAttempt}
	db := &fakeDB{}

	uc := NewAssessmentUsecase(db, mockAssessmentRepo{a: a}, attempts, &mockProficiencyRepo{})

	_, err := uc.Submit(context.Background(), uuid.New(), a.ID, answersFor(a, 15))
	if !errors.Is(err, ErrAlreadyAttempted) {
		t.Fatalf("expected ErrAlreadyAttempted on lost race, got %v", err)
	}
	if db.tx == nil || db.tx.committed {
		t.Fatalf("losing transaction must roll back")
	}
	if !db.tx.rolledBack {
		t.Fatalf("expected rollback")
	}
}

func TestAssessmentSubmit_UnknownAssessment(t *testing.T) {
	uc := NewAssessmentUsecase(&fakeDB{}, mockAssessmentRepo{err: repository.ErrAssessmentNotFound}, &mockAttemptRepo{}, &mockProficiencyRepo{})

	_, err := uc.Submit(context.Background(), uuid.New(), uuid.New(), nil)
	if !errors.Is(err, ErrAssessmentNotFound) {
		t.Fatalf("expected ErrAssessmentNotFound, got %v", err)
	}
}
