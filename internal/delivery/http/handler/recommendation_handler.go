package handler

import (
	"strconv"

	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/pkg/response"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/recommendations", h.GetRecommendations)
}

func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "unauthorized", nil, nil)
	}

	topK := 0
	if raw := c.Query("top_k"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return middleware.NewAppError(fiber.StatusBadRequest, "invalid top_k", nil, err)
		}
		topK = v
	}

	items, err := h.uc.Recommendations(c.Context(), userID, usecase.RecommendationParams{TopK: topK})
	if err != nil {
		return mapMatchError(err)
	}

	out := make([]dto.RecommendationResponse, 0, len(items))
	for _, it := range items {
		rec := dto.RecommendationResponse{
			JobID:     it.JobID,
			Title:     it.Title,
			Company:   it.Company,
			Location:  it.Location,
			CreatedAt: it.CreatedAt,
		}
		if it.Score != nil {
			m := toMatchResponse(*it.Score)
			rec.Match = &m
		}
		out = append(out, rec)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
