package handler

import (
	"errors"

	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/pkg/response"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserSkillHandler struct {
	uc usecase.ProficiencyUsecase
}

func NewUserSkillHandler(uc usecase.ProficiencyUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

func (h *UserSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/me")
	grp.Get("/skills", h.ListSkills)
	grp.Get("/skills/:skill_id/progress", h.Progress)
}

func (h *UserSkillHandler) ListSkills(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "unauthorized", nil, nil)
	}

	records, err := h.uc.UserSkills(c.Context(), userID)
	if err != nil {
		return mapUserSkillError(err)
	}

	out := make([]dto.UserSkillResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, dto.UserSkillResponse{
			SkillID:    rec.SkillID,
			SkillName:  rec.SkillName,
			Percentage: rec.Percentage,
			Level:      rec.Level.String(),
			UpdatedAt:  rec.UpdatedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *UserSkillHandler) Progress(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("skill_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid skill id", nil, err)
	}

	samples, err := h.uc.Progress(c.Context(), userID, skillID)
	if err != nil {
		return mapUserSkillError(err)
	}

	out := make([]dto.ProgressSampleResponse, 0, len(samples))
	for _, s := range samples {
		out = append(out, dto.ProgressSampleResponse{
			Percentage: s.Percentage,
			RecordedAt: s.RecordedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapUserSkillError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrProficiencyNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "no proficiency recorded", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
