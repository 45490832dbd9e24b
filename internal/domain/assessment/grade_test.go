package assessment

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func fixedAssessment(questions int) Assessment {
	a := Assessment{ID: uuid.New(), SkillID: uuid.New(), Title: "Go Basics"}
	for i := 0; i < questions; i++ {
		a.Questions = append(a.Questions, Question{
			ID:      uuid.New(),
			Text:    "q",
			Correct: OptionA,
			Marks:   1,
		})
	}
	return a
}

func answerAll(a Assessment, opt Option) map[uuid.UUID]Option {
	out := make(map[uuid.UUID]Option, len(a.Questions))
	for _, q := range a.Questions {
		out[q.ID] = opt
	}
	return out
}

func TestGrade_WrongQuestionCountRejected(t *testing.T) {
	for _, n := range []int{14, 16} {
		a := fixedAssessment(n)
		_, err := Grade(a, answerAll(a, OptionA))
		if !errors.Is(err, ErrNotGradeable) {
			t.Fatalf("questions=%d: expected ErrNotGradeable, got %v", n, err)
		}
	}
}

func TestGrade_AnswerCountRejected(t *testing.T) {
	a := fixedAssessment(QuestionCount)
	answers := answerAll(a, OptionA)
	delete(answers, a.Questions[0].ID)

	_, err := Grade(a, answers)
	if !errors.Is(err, ErrAnswerCount) {
		t.Fatalf("expected ErrAnswerCount, got %v", err)
	}
}

func TestGrade_InvalidOptionNamesQuestion(t *testing.T) {
	a := fixedAssessment(QuestionCount)
	answers := answerAll(a, OptionA)
	bad := a.Questions[3].ID
	answers[bad] = Option("E")

	_, err := Grade(a, answers)
	if !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	var ansErr *AnswerError
	if !errors.As(err, &ansErr) {
		t.Fatalf("expected AnswerError, got %T", err)
	}
	if ansErr.QuestionID != bad {
		t.Fatalf("expected offending question %s, got %s", bad, ansErr.QuestionID)
	}
	if !strings.Contains(err.Error(), bad.String()) {
		t.Fatalf("error should name the question: %v", err)
	}
}

func TestGrade_UnknownQuestionRejected(t *testing.T) {
	a := fixedAssessment(QuestionCount)
	answers := answerAll(a, OptionA)
	delete(answers, a.Questions[0].ID)
	answers[uuid.New()] = OptionB

	_, err := Grade(a, answers)
	if !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("expected ErrUnknownQuestion, got %v", err)
	}
}

func TestGrade_NineOfFifteenPasses(t *testing.T) {
	a := fixedAssessment(QuestionCount)
	answers := answerAll(a, OptionA)
	for i := 9; i < QuestionCount; i++ {
		answers[a.Questions[i].ID] = OptionB
	}

	res, err := Grade(a, answers)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Score != 9 {
		t.Fatalf("score = %v, want 9", res.Score)
	}
	if res.TotalMarks != 15 {
		t.Fatalf("total = %d, want 15", res.TotalMarks)
	}
	if res.Percentage != 60.0 {
		t.Fatalf("percentage = %v, want 60.0", res.Percentage)
	}
	if !res.Passed {
		t.Fatalf("expected pass at exactly 60%%")
	}
}

func TestGrade_WeightedMarks(t *testing.T) {
	a := fixedAssessment(QuestionCount)
	for i := range a.Questions {
		a.Questions[i].Marks = i + 1 // total 120
	}
	answers := answerAll(a, OptionB)
	answers[a.Questions[14].ID] = OptionA // earn 15 of 120

	res, err := Grade(a, answers)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Score != 15 {
		t.Fatalf("score = %v, want 15", res.Score)
	}
	if res.Percentage != 12.5 {
		t.Fatalf("percentage = %v, want 12.5", res.Percentage)
	}
	if res.Passed {
		t.Fatalf("expected fail below 60%%")
	}
}
