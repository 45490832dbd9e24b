package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateJobRequest struct {
	Title            string      `json:"title"`
	Company          string      `json:"company"`
	Location         string      `json:"location"`
	Description      string      `json:"description"`
	EmploymentModes  []string    `json:"employment_modes"`
	JobTypes         []string    `json:"job_types"`
	ExperienceLevels []string    `json:"experience_levels"`
	RequiredLevel    string      `json:"required_skill_level"`
	RequiredSkillIDs []uuid.UUID `json:"required_skill_ids"`
}

type JobResponse struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	Description      string    `json:"description"`
	EmploymentModes  []string  `json:"employment_modes"`
	JobTypes         []string  `json:"job_types"`
	ExperienceLevels []string  `json:"experience_levels"`
	RequiredLevel    string    `json:"required_skill_level,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

type RecommendationResponse struct {
	JobID     uuid.UUID            `json:"job_id"`
	Title     string               `json:"title"`
	Company   string               `json:"company"`
	Location  string               `json:"location"`
	CreatedAt time.Time            `json:"created_at"`
	Match     *MatchResultResponse `json:"match"`
}
