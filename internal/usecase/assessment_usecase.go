package usecase

import (
	"context"
	"errors"
	"time"

	"talentbridge/internal/database"
	"talentbridge/internal/domain/assessment"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrAlreadyAttempted   = errors.New("assessment already attempted for this skill")
	ErrInvalidSubmission  = errors.New("invalid submission")
)

// SubmitResult carries the attempt outcome and the ledger row it produced.
type SubmitResult struct {
	Attempt     repository.AttemptResult
	Proficiency repository.ProficiencyRecord
}

type AssessmentUsecase interface {
	ListAssessments(ctx context.Context) ([]repository.AssessmentSummary, error)
	GetAssessment(ctx context.Context, id uuid.UUID) (assessment.Assessment, error)
	Submit(ctx context.Context, userID, assessmentID uuid.UUID, answers map[uuid.UUID]assessment.Option) (SubmitResult, error)
}

type Assessments struct {
	db          database.DB
	assessments repository.AssessmentRepository
	attempts    repository.AttemptRepository
	proficiency repository.ProficiencyRepository

	now func() time.Time
}

func NewAssessmentUsecase(
	db database.DB,
	assessments repository.AssessmentRepository,
	attempts repository.AttemptRepository,
	proficiency repository.ProficiencyRepository,
) *Assessments {
	return &Assessments{
		db:          db,
		assessments: assessments,
		attempts:    attempts,
		proficiency: proficiency,
		now:         time.Now,
	}
}

func (u *Assessments) ListAssessments(ctx context.Context) ([]repository.AssessmentSummary, error) {
	out, err := u.assessments.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Assessments) GetAssessment(ctx context.Context, id uuid.UUID) (assessment.Assessment, error) {
	a, err := u.assessments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAssessmentNotFound) {
			return assessment.Assessment{}, ErrAssessmentNotFound
		}
		return assessment.Assessment{}, ErrInternal
	}
	return a, nil
}

// Submit grades one attempt and records its three effects atomically: the
// immutable attempt row, the proficiency ledger upsert, and the append-only
// progress entry. A user gets exactly one attempt per skill; a repeat
// submission returns the stored result alongside ErrAlreadyAttempted.
func (u *Assessments) Submit(ctx context.Context, userID, assessmentID uuid.UUID, answers map[uuid.UUID]assessment.Option) (SubmitResult, error) {
	if userID == uuid.Nil {
		return SubmitResult{}, ErrUnauthorized
	}

	a, err := u.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, repository.ErrAssessmentNotFound) {
			return SubmitResult{}, ErrAssessmentNotFound
		}
		return SubmitResult{}, ErrInternal
	}

	if prior, err := u.attempts.FindByUserAndSkill(ctx, userID, a.SkillID); err == nil {
		return SubmitResult{Attempt: prior}, ErrAlreadyAttempted
	} else if !errors.Is(err, repository.ErrAttemptNotFound) {
		return SubmitResult{}, ErrInternal
	}

	grade, err := assessment.Grade(a, answers)
	if err != nil {
		return SubmitResult{}, errors.Join(ErrInvalidSubmission, err)
	}

	res := SubmitResult{
		Attempt: repository.AttemptResult{
			ID:         uuid.New(),
			UserID:     userID,
			SkillID:    a.SkillID,
			TestID:     a.ID,
			Score:      grade.Score,
			Percentage: grade.Percentage,
			Passed:     grade.Passed,
			TakenAt:    u.now().UTC(),
		},
	}

	err = database.WithinTx(ctx, u.db, func(tx database.Tx) error {
		if err := u.attempts.Insert(ctx, tx, res.Attempt); err != nil {
			return err
		}
		rec, err := u.proficiency.Upsert(ctx, tx, userID, a.SkillID, grade.Percentage)
		if err != nil {
			return err
		}
		res.Proficiency = rec
		return u.proficiency.AppendProgress(ctx, tx, userID, a.SkillID, grade.Percentage)
	})
	if err != nil {
		// Lost a race against a concurrent submission for the same skill:
		// the winner's row is the canonical result.
		if errors.Is(err, repository.ErrDuplicateAttempt) {
			if prior, findErr := u.attempts.FindByUserAndSkill(ctx, userID, a.SkillID); findErr == nil {
				return SubmitResult{Attempt: prior}, ErrAlreadyAttempted
			}
			return SubmitResult{}, ErrAlreadyAttempted
		}
		return SubmitResult{}, ErrInternal
	}

	return res, nil
}
