package handler

import (
	"errors"

	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/pkg/response"
	"talentbridge/internal/repository"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

// RegisterRoutes wires the public catalog reads. The admin-only create is
// registered separately so the role gate sits on exactly one route.
func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/skills")
	grp.Get("/", h.ListSkills)
	grp.Get("/:skill_id", h.GetSkill)
}

func (h *SkillHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/skills", h.CreateSkill)
}

func (h *SkillHandler) ListSkills(c fiber.Ctx) error {
	skills, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return mapSkillError(err)
	}

	out := make([]dto.SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, toSkillResponse(s))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *SkillHandler) GetSkill(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("skill_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid skill id", nil, err)
	}

	s, err := h.uc.GetSkill(c.Context(), id)
	if err != nil {
		return mapSkillError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toSkillResponse(s))
}

func (h *SkillHandler) CreateSkill(c fiber.Ctx) error {
	var req dto.CreateSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request body", nil, err)
	}

	s, err := h.uc.CreateSkill(c.Context(), usecase.CreateSkillInput{
		Name:       req.Name,
		Difficulty: req.Difficulty,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return mapSkillError(err)
	}
	return response.Success(c, fiber.StatusCreated, "skill created", toSkillResponse(s))
}

func toSkillResponse(s repository.Skill) dto.SkillResponse {
	return dto.SkillResponse{
		ID:              s.ID,
		CategoryID:      s.CategoryID,
		CategoryName:    s.CategoryName,
		Name:            s.Name,
		Difficulty:      s.Difficulty,
		PopularityScore: s.PopularityScore,
		Summary:         s.AISummary,
		Keywords:        s.AIKeywords,
		CreatedAt:       s.CreatedAt,
	}
}

func mapSkillError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "invalid input", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
