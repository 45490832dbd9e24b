package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"talentbridge/internal/cache"
	"talentbridge/internal/enrichment"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
)

var ErrSkillNotFound = errors.New("skill not found")

const skillCatalogCacheKey = "skills:catalog"

type CreateSkillInput struct {
	Name       string
	Difficulty string
	CategoryID *uuid.UUID
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]repository.Skill, error)
	GetSkill(ctx context.Context, id uuid.UUID) (repository.Skill, error)
	CreateSkill(ctx context.Context, in CreateSkillInput) (repository.Skill, error)
}

type Skills struct {
	skills repository.SkillRepository
	cache  *cache.Redis
	guard  *enrichment.Guard
	ttl    time.Duration
}

func NewSkillUsecase(skills repository.SkillRepository, c *cache.Redis, guard *enrichment.Guard) *Skills {
	return &Skills{skills: skills, cache: c, guard: guard, ttl: 10 * time.Minute}
}

// ListSkills serves the catalog from Redis when possible. A cache miss or an
// unavailable Redis falls through to Postgres.
func (u *Skills) ListSkills(ctx context.Context) ([]repository.Skill, error) {
	var cached []repository.Skill
	if ok, err := u.cache.GetJSON(ctx, skillCatalogCacheKey, &cached); err == nil && ok {
		return cached, nil
	}

	skills, err := u.skills.ListSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	_ = u.cache.SetJSON(ctx, skillCatalogCacheKey, skills, u.ttl)
	return skills, nil
}

func (u *Skills) GetSkill(ctx context.Context, id uuid.UUID) (repository.Skill, error) {
	s, err := u.skills.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return repository.Skill{}, ErrSkillNotFound
		}
		return repository.Skill{}, ErrInternal
	}
	return s, nil
}

// CreateSkill stores the primary content and schedules derived-field
// generation in the background. The response never waits on generation.
func (u *Skills) CreateSkill(ctx context.Context, in CreateSkillInput) (repository.Skill, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return repository.Skill{}, ErrInvalidInput
	}
	difficulty := strings.TrimSpace(in.Difficulty)
	if difficulty == "" {
		difficulty = "beginner"
	}

	created, err := u.skills.Create(ctx, repository.Skill{
		Name:       name,
		Difficulty: difficulty,
		CategoryID: in.CategoryID,
	})
	if err != nil {
		return repository.Skill{}, ErrInternal
	}

	_ = u.cache.Delete(ctx, skillCatalogCacheKey)

	if u.guard != nil {
		u.guard.WritePrimary(ctx, enrichment.Entity{
			Kind: enrichment.KindSkill,
			ID:   created.ID,
			Text: created.Name,
		})
	}
	return created, nil
}
