package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserSkillResponse struct {
	SkillID    uuid.UUID `json:"skill_id"`
	SkillName  string    `json:"skill_name"`
	Percentage float64   `json:"percentage"`
	Level      string    `json:"level"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ProgressSampleResponse struct {
	Percentage float64   `json:"percentage"`
	RecordedAt time.Time `json:"recorded_at"`
}
