package content

import "fmt"

// ScoreQuiz grades submitted answers (question ID -> chosen option index)
// against the quiz and returns the summed points for correct answers.
// Unanswered and wrong questions score zero; unknown question IDs are
// ignored.
func ScoreQuiz(quiz Quiz, answers map[string]int) int64 {
	var score int64
	for _, q := range quiz {
		chosen, ok := answers[q.ID]
		if !ok {
			continue
		}
		if chosen == q.Answer {
			score += q.Points
		}
	}
	return score
}

// ValidateSurvey checks that every required question has a non-empty
// answer. Returns ErrValidationFailed naming the first missing question.
func ValidateSurvey(survey Survey, responses Responses) error {
	for _, q := range survey {
		if !q.Required {
			continue
		}
		if responses[q.ID] == "" {
			return fmt.Errorf("%w: question %q requires an answer", ErrValidationFailed, q.ID)
		}
	}
	return nil
}
