package assessment

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QuestionCount is the fixed number of questions every servable test carries.
const QuestionCount = 15

// PassPercentage is the minimum percentage considered a passing attempt.
const PassPercentage = 60.0

// Option is one of the four answer choices of a question.
type Option string

const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionC Option = "C"
	OptionD Option = "D"
)

func (o Option) Valid() bool {
	switch o {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

type Question struct {
	ID      uuid.UUID
	Text    string
	OptionA string
	OptionB string
	OptionC string
	OptionD string
	Correct Option
	Marks   int
}

type Assessment struct {
	ID              uuid.UUID
	SkillID         uuid.UUID
	Title           string
	Description     string
	Difficulty      string
	DurationMinutes int
	Version         int
	CreatedAt       time.Time
	Questions       []Question
}

// TotalMarks is the sum of per-question mark weights.
func (a Assessment) TotalMarks() int {
	total := 0
	for _, q := range a.Questions {
		total += q.Marks
	}
	return total
}

// Gradeable reports whether the assessment satisfies the fixed-shape
// precondition. An assessment that fails this is not servable at all.
func (a Assessment) Gradeable() bool {
	return len(a.Questions) == QuestionCount
}

var (
	ErrNotGradeable    = errors.New("assessment not gradeable")
	ErrAnswerCount     = errors.New("answers must cover exactly 15 questions")
	ErrInvalidOption   = errors.New("invalid answer option")
	ErrUnknownQuestion = errors.New("unknown question")
)

// AnswerError reports which question an invalid answer belongs to.
type AnswerError struct {
	QuestionID uuid.UUID
	Err        error
}

func (e *AnswerError) Error() string {
	return fmt.Sprintf("%v: question %s", e.Err, e.QuestionID)
}

func (e *AnswerError) Unwrap() error {
	return e.Err
}
