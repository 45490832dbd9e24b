package handler

import (
	"errors"
	"strconv"

	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/domain/identity"
	"talentbridge/internal/pkg/response"
	"talentbridge/internal/repository"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Get("/", h.ListJobs)
	grp.Get("/:job_id", h.GetJob)
	grp.Post("/", h.CreateJob)
}

func (h *JobHandler) ListJobs(c fiber.Ctx) error {
	params := usecase.ListJobsParams{}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "invalid limit", nil, err)
		}
		params.Limit = v
	}
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "invalid offset", nil, err)
		}
		params.Offset = v
	}

	jobs, err := h.uc.ListJobs(c.Context(), params)
	if err != nil {
		return mapJobError(err)
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResponse(j))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobHandler) GetJob(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid job id", nil, err)
	}

	j, err := h.uc.GetJob(c.Context(), id)
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toJobResponse(j))
}

func (h *JobHandler) CreateJob(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "unauthorized", nil, nil)
	}
	role, ok := c.Locals(middleware.CtxRoleKey).(identity.Role)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "unauthorized", nil, nil)
	}

	var req dto.CreateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request body", nil, err)
	}

	j, err := h.uc.CreateJob(c.Context(), userID, role, usecase.CreateJobInput{
		Title:            req.Title,
		Company:          req.Company,
		Location:         req.Location,
		Description:      req.Description,
		EmploymentModes:  req.EmploymentModes,
		JobTypes:         req.JobTypes,
		ExperienceLevels: req.ExperienceLevels,
		RequiredLevel:    req.RequiredLevel,
		RequiredSkillIDs: req.RequiredSkillIDs,
	})
	if err != nil {
		return mapJobError(err)
	}
	return response.Success(c, fiber.StatusCreated, "job created", toJobResponse(j))
}

func toJobResponse(j repository.Job) dto.JobResponse {
	out := dto.JobResponse{
		ID:               j.ID,
		Title:            j.Title,
		Company:          j.Company,
		Location:         j.Location,
		Description:      j.Description,
		EmploymentModes:  j.EmploymentModes,
		JobTypes:         j.JobTypes,
		ExperienceLevels: j.ExperienceLevels,
		IsActive:         j.IsActive,
		CreatedAt:        j.CreatedAt,
	}
	if j.RequiredLevel != nil {
		out.RequiredLevel = j.RequiredLevel.String()
	}
	return out
}

func mapJobError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "job not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "invalid input", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
