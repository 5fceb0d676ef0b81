package content_test

import (
	"errors"
	"testing"

	"github.com/agripoint/loyalty-api/internal/domain/content"
)

func TestScoreQuiz(t *testing.T) {
	quiz := content.Quiz{
		{ID: "q1", Options: []string{"a", "b", "c"}, Answer: 1, Points: 10},
		{ID: "q2", Options: []string{"a", "b"}, Answer: 0, Points: 15},
		{ID: "q3", Options: []string{"a", "b", "c", "d"}, Answer: 3, Points: 5},
	}

	tests := []struct {
		name    string
		answers map[string]int
		want    int64
	}{
		{"all correct", map[string]int{"q1": 1, "q2": 0, "q3": 3}, 30},
		{"partial", map[string]int{"q1": 1, "q2": 1, "q3": 3}, 15},
		{"all wrong", map[string]int{"q1": 0, "q2": 1, "q3": 0}, 0},
		{"unanswered questions score zero", map[string]int{"q1": 1}, 10},
		{"unknown question ids ignored", map[string]int{"q1": 1, "bogus": 0}, 10},
		{"empty answers", map[string]int{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := content.ScoreQuiz(quiz, tt.answers); got != tt.want {
				t.Fatalf("ScoreQuiz() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateSurvey(t *testing.T) {
	survey := content.Survey{
		{ID: "s1", Text: "How many animals?", Required: true},
		{ID: "s2", Text: "Comments", Required: false},
	}

	if err := content.ValidateSurvey(survey, content.Responses{"s1": "40"}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	err := content.ValidateSurvey(survey, content.Responses{"s2": "fine"})
	if !errors.Is(err, content.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}

	// Empty string does not satisfy a required question.
	err = content.ValidateSurvey(survey, content.Responses{"s1": ""})
	if !errors.Is(err, content.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for empty answer, got %v", err)
	}

	if err := content.ValidateSurvey(content.Survey{}, content.Responses{}); err != nil {
		t.Fatalf("expected empty survey to validate, got %v", err)
	}
}
