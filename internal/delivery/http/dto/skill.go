package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSkillRequest struct {
	Name       string     `json:"name"`
	Difficulty string     `json:"difficulty"`
	CategoryID *uuid.UUID `json:"category_id"`
}

type SkillResponse struct {
	ID              uuid.UUID  `json:"id"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	CategoryName    string     `json:"category_name,omitempty"`
	Name            string     `json:"name"`
	Difficulty      string     `json:"difficulty"`
	PopularityScore float64    `json:"popularity_score"`
	Summary         string     `json:"summary,omitempty"`
	Keywords        string     `json:"keywords,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
