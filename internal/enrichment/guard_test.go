package enrichment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"talentbridge/internal/repository"

	"github.com/google/uuid"
)

type mockDerivedStore struct {
	mu         sync.Mutex
	skillCalls []repository.DerivedFields
	jobCalls   []repository.DerivedFields
	failUntil  int
	calls      int
}

func (m *mockDerivedStore) UpdateSkill(_ context.Context, _ uuid.UUID, f repository.DerivedFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.calls <= m.failUntil {
		return errors.New("db down")
	}
	m.skillCalls = append(m.skillCalls, f)
	return nil
}

func (m *mockDerivedStore) UpdateJob(_ context.Context, _ uuid.UUID, f repository.DerivedFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.calls <= m.failUntil {
		return errors.New("db down")
	}
	m.jobCalls = append(m.jobCalls, f)
	return nil
}

func (m *mockDerivedStore) snapshot() (skills, jobs []repository.DerivedFields, calls int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]repository.DerivedFields(nil), m.skillCalls...),
		append([]repository.DerivedFields(nil), m.jobCalls...),
		m.calls
}

type mockGenerator struct {
	summary     string
	keywords    string
	vector      []float32
	summaryErr  error
	keywordsErr error
	vectorErr   error
}

func (m *mockGenerator) GenerateSummary(context.Context, Entity) (string, error) {
	return m.summary, m.summaryErr
}

func (m *mockGenerator) GenerateKeywords(context.Context, Entity) (string, error) {
	return m.keywords, m.keywordsErr
}

func (m *mockGenerator) EmbedText(context.Context, string) ([]float32, error) {
	return m.vector, m.vectorErr
}

func TestWritePrimaryGeneratesAndPersists(t *testing.T) {
	store := &mockDerivedStore{}
	gen := &mockGenerator{summary: "A systems language.", keywords: "go, concurrency", vector: []float32{0.1, 0.2}}

	guard := NewGuard(gen, store, nil, nil)
	guard.backoff = time.Millisecond
	guard.Start(context.Background(), 1)

	guard.WritePrimary(context.Background(), Entity{Kind: KindSkill, ID: uuid.New(), Text: "Go"})
	guard.Close()

	skills, _, _ := store.snapshot()
	if len(skills) != 1 {
		t.Fatalf("expected 1 skill write, got %d", len(skills))
	}
	if skills[0].Summary != "A systems language." {
		t.Fatalf("unexpected summary: %q", skills[0].Summary)
	}
	if skills[0].Keywords != "go, concurrency" {
		t.Fatalf("unexpected keywords: %q", skills[0].Keywords)
	}
	if len(skills[0].Vector) != 2 {
		t.Fatalf("expected vector of length 2, got %d", len(skills[0].Vector))
	}
}

func TestWritePrimaryFallsBackOnGenerationFailure(t *testing.T) {
	store := &mockDerivedStore{}
	gen := &mockGenerator{
		summaryErr:  errors.New("api error"),
		keywordsErr: errors.New("api error"),
		vectorErr:   errors.New("api error"),
	}

	guard := NewGuard(gen, store, nil, nil)
	guard.backoff = time.Millisecond
	guard.Start(context.Background(), 1)

	guard.WritePrimary(context.Background(), Entity{Kind: KindJob, ID: uuid.New(), Text: "Backend Engineer"})
	guard.Close()

	_, jobs, _ := store.snapshot()
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job write, got %d", len(jobs))
	}
	if jobs[0].Summary != FallbackSummary {
		t.Fatalf("expected fallback summary, got %q", jobs[0].Summary)
	}
	if jobs[0].Keywords != FallbackJobKeywords {
		t.Fatalf("expected fallback job keywords, got %q", jobs[0].Keywords)
	}
	if jobs[0].Vector != nil {
		t.Fatalf("expected empty vector on embedding failure")
	}
}

func TestWriteDerivedOnlyNeverEnqueues(t *testing.T) {
	store := &mockDerivedStore{}
	guard := NewGuard(&mockGenerator{}, store, nil, nil)
	// Workers never started: if WriteDerivedOnly enqueued instead of writing
	// directly, the store would stay empty.

	err := guard.WriteDerivedOnly(context.Background(), KindSkill, uuid.New(), Derived{Summary: "s"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	skills, _, _ := store.snapshot()
	if len(skills) != 1 {
		t.Fatalf("expected direct write, got %d", len(skills))
	}
	if len(guard.queue) != 0 {
		t.Fatalf("derived-only write must not enqueue generation")
	}
}

func TestPersistRetriesThenAbandons(t *testing.T) {
	store := &mockDerivedStore{failUntil: 10}
	guard := NewGuard(&mockGenerator{summary: "s", keywords: "k"}, store, nil, nil)
	guard.backoff = time.Millisecond
	guard.Start(context.Background(), 1)

	guard.WritePrimary(context.Background(), Entity{Kind: KindSkill, ID: uuid.New(), Text: "Go"})
	guard.Close()

	skills, _, calls := store.snapshot()
	if len(skills) != 0 {
		t.Fatalf("expected write to be abandoned, got %d writes", len(skills))
	}
	if calls != persistAttempts {
		t.Fatalf("expected %d persist attempts, got %d", persistAttempts, calls)
	}
}

func TestPersistRecoversWithinRetryBudget(t *testing.T) {
	store := &mockDerivedStore{failUntil: 2}
	guard := NewGuard(&mockGenerator{summary: "s", keywords: "k"}, store, nil, nil)
	guard.backoff = time.Millisecond
	guard.Start(context.Background(), 1)

	guard.WritePrimary(context.Background(), Entity{Kind: KindSkill, ID: uuid.New(), Text: "Go"})
	guard.Close()

	skills, _, _ := store.snapshot()
	if len(skills) != 1 {
		t.Fatalf("expected write to succeed on third attempt, got %d writes", len(skills))
	}
}

type mockLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func (m *mockLocker) SetIfNotExists(_ context.Context, key, _ string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held == nil {
		m.held = make(map[string]bool)
	}
	if m.held[key] {
		return false, nil
	}
	m.held[key] = true
	return true, nil
}

func TestWritePrimaryDeduplicatesInFlightWork(t *testing.T) {
	store := &mockDerivedStore{}
	guard := NewGuard(&mockGenerator{summary: "s", keywords: "k"}, store, &mockLocker{}, nil)
	guard.backoff = time.Millisecond
	guard.Start(context.Background(), 1)

	id := uuid.New()
	guard.WritePrimary(context.Background(), Entity{Kind: KindSkill, ID: id, Text: "Go"})
	guard.WritePrimary(context.Background(), Entity{Kind: KindSkill, ID: id, Text: "Go"})
	guard.Close()

	skills, _, _ := store.snapshot()
	if len(skills) != 1 {
		t.Fatalf("expected duplicate request to be skipped, got %d writes", len(skills))
	}
}
