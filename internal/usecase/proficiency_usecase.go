package usecase

import (
	"context"
	"errors"

	"talentbridge/internal/repository"

	"github.com/google/uuid"
)

var ErrProficiencyNotFound = errors.New("no proficiency recorded for this skill")

type ProficiencyUsecase interface {
	UserSkills(ctx context.Context, userID uuid.UUID) ([]repository.ProficiencyRecord, error)
	UserSkill(ctx context.Context, userID, skillID uuid.UUID) (repository.ProficiencyRecord, error)
	Progress(ctx context.Context, userID, skillID uuid.UUID) ([]repository.ProgressSample, error)
}

type Proficiency struct {
	records repository.ProficiencyRepository
}

func NewProficiencyUsecase(records repository.ProficiencyRepository) *Proficiency {
	return &Proficiency{records: records}
}

func (u *Proficiency) UserSkills(ctx context.Context, userID uuid.UUID) ([]repository.ProficiencyRecord, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.records.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Proficiency) UserSkill(ctx context.Context, userID, skillID uuid.UUID) (repository.ProficiencyRecord, error) {
	if userID == uuid.Nil {
		return repository.ProficiencyRecord{}, ErrUnauthorized
	}
	rec, err := u.records.FindByUserAndSkill(ctx, userID, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrProficiencyNotFound) {
			return repository.ProficiencyRecord{}, ErrProficiencyNotFound
		}
		return repository.ProficiencyRecord{}, ErrInternal
	}
	return rec, nil
}

// Progress returns the audit history newest first.
func (u *Proficiency) Progress(ctx context.Context, userID, skillID uuid.UUID) ([]repository.ProgressSample, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.records.ListProgress(ctx, userID, skillID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}
