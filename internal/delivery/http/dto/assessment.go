package dto

import (
	"time"

	"github.com/google/uuid"
)

type AssessmentSummaryResponse struct {
	ID              uuid.UUID `json:"id"`
	SkillID         uuid.UUID `json:"skill_id"`
	SkillName       string    `json:"skill_name"`
	Title           string    `json:"title"`
	Difficulty      string    `json:"difficulty"`
	DurationMinutes int       `json:"duration_minutes"`
	QuestionCount   int       `json:"question_count"`
}

// QuestionResponse deliberately omits the correct option.
type QuestionResponse struct {
	ID      uuid.UUID `json:"id"`
	Text    string    `json:"text"`
	OptionA string    `json:"option_a"`
	OptionB string    `json:"option_b"`
	OptionC string    `json:"option_c"`
	OptionD string    `json:"option_d"`
	Marks   int       `json:"marks"`
}

type AssessmentResponse struct {
	ID              uuid.UUID          `json:"id"`
	SkillID         uuid.UUID          `json:"skill_id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Difficulty      string             `json:"difficulty"`
	DurationMinutes int                `json:"duration_minutes"`
	Questions       []QuestionResponse `json:"questions"`
}

type SubmitAnswersRequest struct {
	Answers map[string]string `json:"answers"`
}

type AttemptResponse struct {
	ID         uuid.UUID `json:"id"`
	SkillID    uuid.UUID `json:"skill_id"`
	Score      float64   `json:"score"`
	Percentage float64   `json:"percentage"`
	Passed     bool      `json:"passed"`
	TakenAt    time.Time `json:"taken_at"`
}

type SubmitResultResponse struct {
	Attempt     AttemptResponse    `json:"attempt"`
	Proficiency *UserSkillResponse `json:"proficiency,omitempty"`
}
