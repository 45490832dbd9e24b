package enrichment

import (
	"context"

	"github.com/google/uuid"
)

// EntityKind selects which table a derived write lands on.
type EntityKind string

const (
	KindSkill EntityKind = "skill"
	KindJob   EntityKind = "job"
)

// Entity is the primary content handed to the generator. Text is whatever
// human-authored fields describe the record (name, title, description).
type Entity struct {
	Kind EntityKind
	ID   uuid.UUID
	Text string
}

// Derived is the generated payload written back onto the entity row.
type Derived struct {
	Summary  string
	Keywords string
	Vector   []float32
}

// Generator produces derived content from primary content. Implementations
// may fail; callers substitute fallbacks and never surface the error to the
// request that triggered generation.
type Generator interface {
	GenerateSummary(ctx context.Context, e Entity) (string, error)
	GenerateKeywords(ctx context.Context, e Entity) (string, error)
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

const (
	FallbackSummary       = "No summary available."
	FallbackSkillKeywords = "skill, learning, basics"
	FallbackJobKeywords   = "skills, job, experience"
)

func fallbackKeywords(kind EntityKind) string {
	if kind == KindJob {
		return FallbackJobKeywords
	}
	return FallbackSkillKeywords
}
