package enrichment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"talentbridge/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	persistAttempts = 3
	dedupTTL        = 2 * time.Minute
)

type locker interface {
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}

// Guard is the only path through which derived fields reach storage. It
// exposes two write operations with different triggering behavior:
//
//   - WritePrimary stores nothing itself; it enqueues background generation
//     for the entity's derived fields.
//   - WriteDerivedOnly persists derived fields directly and never enqueues,
//     so the generation worker can use it without feeding back into itself.
//
// Generation and persistence failures are absorbed: they are logged and the
// entity keeps its previous (or fallback) derived fields. No error from this
// package ever reaches the request that created the entity.
type Guard struct {
	gen     Generator
	store   repository.DerivedFieldRepository
	locks   locker
	log     *zap.Logger
	backoff time.Duration

	queue chan Entity
	wg    sync.WaitGroup

	closeOnce sync.Once
}

func NewGuard(gen Generator, store repository.DerivedFieldRepository, locks locker, log *zap.Logger) *Guard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Guard{
		gen:     gen,
		store:   store,
		locks:   locks,
		log:     log,
		backoff: 500 * time.Millisecond,
		queue:   make(chan Entity, 64),
	}
}

// Start launches the background workers. The guard drains until Close is
// called or ctx is cancelled.
func (g *Guard) Start(ctx context.Context, workers int) {
	if workers <= 0 {
		workers = 2
	}
	g.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer g.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case e, ok := <-g.queue:
					if !ok {
						return
					}
					g.process(ctx, e)
				}
			}
		}()
	}
}

// Close stops accepting work and waits for in-flight generation to finish.
func (g *Guard) Close() {
	g.closeOnce.Do(func() { close(g.queue) })
	g.wg.Wait()
}

// WritePrimary schedules derived-field generation for an entity whose
// primary content was just written. A full queue drops the request; the
// entity simply keeps its current derived fields.
func (g *Guard) WritePrimary(ctx context.Context, e Entity) {
	if e.ID == uuid.Nil {
		return
	}

	if g.locks != nil {
		key := fmt.Sprintf("enrich:%s:%s", e.Kind, e.ID)
		acquired, err := g.locks.SetIfNotExists(ctx, key, "1", dedupTTL)
		if err == nil && !acquired {
			g.log.Debug("enrichment already in flight, skipping",
				zap.String("kind", string(e.Kind)), zap.String("id", e.ID.String()))
			return
		}
	}

	select {
	case g.queue <- e:
	default:
		g.log.Warn("enrichment queue full, dropping",
			zap.String("kind", string(e.Kind)), zap.String("id", e.ID.String()))
	}
}

// WriteDerivedOnly persists derived fields without triggering generation.
func (g *Guard) WriteDerivedOnly(ctx context.Context, kind EntityKind, id uuid.UUID, d Derived) error {
	return g.persist(ctx, kind, id, d)
}

func (g *Guard) process(ctx context.Context, e Entity) {
	d := g.generate(ctx, e)

	var err error
	for attempt := 1; attempt <= persistAttempts; attempt++ {
		if err = g.persist(ctx, e.Kind, e.ID, d); err == nil {
			return
		}
		if attempt < persistAttempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(g.backoff * time.Duration(attempt)):
			}
		}
	}

	g.log.Warn("abandoning derived-field write",
		zap.String("kind", string(e.Kind)),
		zap.String("id", e.ID.String()),
		zap.Error(err))
}

// generate never fails; each field that cannot be produced gets its fallback.
func (g *Guard) generate(ctx context.Context, e Entity) Derived {
	d := Derived{
		Summary:  FallbackSummary,
		Keywords: fallbackKeywords(e.Kind),
	}
	if g.gen == nil {
		return d
	}

	if summary, err := g.gen.GenerateSummary(ctx, e); err == nil {
		d.Summary = summary
	} else {
		g.log.Warn("summary generation failed, using fallback",
			zap.String("id", e.ID.String()), zap.Error(err))
	}

	if keywords, err := g.gen.GenerateKeywords(ctx, e); err == nil {
		d.Keywords = keywords
	} else {
		g.log.Warn("keyword generation failed, using fallback",
			zap.String("id", e.ID.String()), zap.Error(err))
	}

	if vec, err := g.gen.EmbedText(ctx, e.Text); err == nil {
		d.Vector = vec
	} else {
		g.log.Warn("embedding failed, leaving vector empty",
			zap.String("id", e.ID.String()), zap.Error(err))
	}

	return d
}

func (g *Guard) persist(ctx context.Context, kind EntityKind, id uuid.UUID, d Derived) error {
	f := repository.DerivedFields{Summary: d.Summary, Keywords: d.Keywords, Vector: d.Vector}
	switch kind {
	case KindJob:
		return g.store.UpdateJob(ctx, id, f)
	default:
		return g.store.UpdateSkill(ctx, id, f)
	}
}
