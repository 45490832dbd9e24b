package assessment

import (
	"math"

	"github.com/google/uuid"
)

// GradeResult is the outcome of grading one answer sheet.
type GradeResult struct {
	Score      float64
	TotalMarks int
	Percentage float64
	Passed     bool
}

// Grade scores an answer sheet against an assessment. All validation happens
// before any score is computed, so a rejected sheet never produces a partial
// result. Answers are keyed by question id; earned marks are the sum of the
// weights of correctly answered questions.
func Grade(a Assessment, answers map[uuid.UUID]Option) (GradeResult, error) {
	if !a.Gradeable() {
		return GradeResult{}, ErrNotGradeable
	}
	if len(answers) != QuestionCount {
		return GradeResult{}, ErrAnswerCount
	}

	byID := make(map[uuid.UUID]Question, len(a.Questions))
	for _, q := range a.Questions {
		byID[q.ID] = q
	}

	for qid, opt := range answers {
		if _, ok := byID[qid]; !ok {
			return GradeResult{}, &AnswerError{QuestionID: qid, Err: ErrUnknownQuestion}
		}
		if !opt.Valid() {
			return GradeResult{}, &AnswerError{QuestionID: qid, Err: ErrInvalidOption}
		}
	}

	earned := 0
	total := 0
	for _, q := range a.Questions {
		total += q.Marks
		if answers[q.ID] == q.Correct {
			earned += q.Marks
		}
	}

	percentage := 0.0
	if total > 0 {
		percentage = round2(100 * float64(earned) / float64(total))
	}

	return GradeResult{
		Score:      float64(earned),
		TotalMarks: total,
		Percentage: percentage,
		Passed:     percentage >= PassPercentage,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
