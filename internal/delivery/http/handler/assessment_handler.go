package handler

import (
	"errors"

	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/domain/assessment"
	"talentbridge/internal/pkg/response"
	"talentbridge/internal/repository"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AssessmentHandler struct {
	uc usecase.AssessmentUsecase
}

func NewAssessmentHandler(uc usecase.AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

func (h *AssessmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/assessments")
	grp.Get("/", h.ListAssessments)
	grp.Get("/:assessment_id", h.GetAssessment)
	grp.Post("/:assessment_id/submit", h.Submit)
}

func (h *AssessmentHandler) ListAssessments(c fiber.Ctx) error {
	items, err := h.uc.ListAssessments(c.Context())
	if err != nil {
		return mapAssessmentError(err)
	}

	out := make([]dto.AssessmentSummaryResponse, 0, len(items))
	for _, a := range items {
		out = append(out, dto.AssessmentSummaryResponse{
			ID:              a.ID,
			SkillID:         a.SkillID,
			SkillName:       a.SkillName,
			Title:           a.Title,
			Difficulty:      a.Difficulty,
			DurationMinutes: a.DurationMinutes,
			QuestionCount:   a.QuestionCount,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *AssessmentHandler) GetAssessment(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("assessment_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid assessment id", nil, err)
	}

	a, err := h.uc.GetAssessment(c.Context(), id)
	if err != nil {
		return mapAssessmentError(err)
	}

	out := dto.AssessmentResponse{
		ID:              a.ID,
		SkillID:         a.SkillID,
		Title:           a.Title,
		Description:     a.Description,
		Difficulty:      a.Difficulty,
		DurationMinutes: a.DurationMinutes,
		Questions:       make([]dto.QuestionResponse, 0, len(a.Questions)),
	}
	for _, q := range a.Questions {
		out.Questions = append(out.Questions, dto.QuestionResponse{
			ID:      q.ID,
			Text:    q.Text,
			OptionA: q.OptionA,
			OptionB: q.OptionB,
			OptionC: q.OptionC,
			OptionD: q.OptionD,
			Marks:   q.Marks,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *AssessmentHandler) Submit(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "unauthorized", nil, nil)
	}

	assessmentID, err := uuid.Parse(c.Params("assessment_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid assessment id", nil, err)
	}

	var req dto.SubmitAnswersRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request body", nil, err)
	}

	answers := make(map[uuid.UUID]assessment.Option, len(req.Answers))
	for rawID, rawOpt := range req.Answers {
		qid, err := uuid.Parse(rawID)
		if err != nil {
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, "invalid question id: "+rawID, nil, err)
		}
		answers[qid] = assessment.Option(rawOpt)
	}

	res, err := h.uc.Submit(c.Context(), userID, assessmentID, answers)
	if err != nil {
		if errors.Is(err, usecase.ErrAlreadyAttempted) {
			// The stored result rides along so the client can show it.
			return middleware.NewAppError(fiber.StatusConflict, "assessment already attempted",
				toAttemptResponse(res.Attempt), err)
		}
		return mapAssessmentError(err)
	}

	out := dto.SubmitResultResponse{
		Attempt: toAttemptResponse(res.Attempt),
		Proficiency: &dto.UserSkillResponse{
			SkillID:    res.Proficiency.SkillID,
			SkillName:  res.Proficiency.SkillName,
			Percentage: res.Proficiency.Percentage,
			Level:      res.Proficiency.Level.String(),
			UpdatedAt:  res.Proficiency.UpdatedAt,
		},
	}
	return response.Success(c, fiber.StatusCreated, "assessment graded", out)
}

func toAttemptResponse(a repository.AttemptResult) dto.AttemptResponse {
	return dto.AttemptResponse{
		ID:         a.ID,
		SkillID:    a.SkillID,
		Score:      a.Score,
		Percentage: a.Percentage,
		Passed:     a.Passed,
		TakenAt:    a.TakenAt,
	}
}

func mapAssessmentError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrAssessmentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "assessment not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidSubmission):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "invalid submission", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
