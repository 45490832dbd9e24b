package handler

import (
	"errors"

	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/domain/matching"
	"talentbridge/internal/pkg/response"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/jobs/:job_id/match", h.GetMatch)
}

func (h *MatchHandler) GetMatch(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "unauthorized", nil, nil)
	}

	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid job id", nil, err)
	}

	res, err := h.uc.CalculateMatch(c.Context(), userID, jobID)
	if err != nil {
		return mapMatchError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toMatchResponse(res))
}

func toMatchResponse(res matching.Result) dto.MatchResultResponse {
	out := dto.MatchResultResponse{
		FinalScore:      res.FinalScore,
		SkillScore:      res.SkillScore,
		ExperienceScore: res.ExperienceScore,
		ResumeScore:     res.ResumeScore,
		MatchedSkills:   make([]dto.MatchedSkillResponse, 0, len(res.MatchedSkills)),
		MissingSkills:   res.MissingSkills,
	}
	if out.MissingSkills == nil {
		out.MissingSkills = []string{}
	}
	for _, ms := range res.MatchedSkills {
		out.MatchedSkills = append(out.MatchedSkills, dto.MatchedSkillResponse{
			Skill:       ms.Skill,
			Proficiency: ms.Proficiency,
			Level:       ms.Level.String(),
		})
	}
	return out
}

func mapMatchError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "job not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
