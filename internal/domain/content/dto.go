package content

import (
	"time"

	"github.com/google/uuid"
)

// CompleteRequest is the completion payload. Which fields matter depends
// on the item's kind: ProgressPct for articles/videos, Answers for
// quizzes, Responses for surveys.
type CompleteRequest struct {
	ProgressPct int            `json:"progress_pct" validate:"min=0,max=100"`
	Answers     map[string]int `json:"answers"`
	Responses   Responses      `json:"responses"`
}

// ItemView is the listing row.
type ItemView struct {
	ID          uuid.UUID `json:"id"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	PointsAward int64     `json:"points_award"`
	CoinsAward  int64     `json:"coins_award"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

func toItemView(item *Item, completed bool) ItemView {
	return ItemView{
		ID:          item.ID,
		Kind:        item.Kind,
		Title:       item.Title,
		PointsAward: item.PointsAward,
		CoinsAward:  item.CoinsAward,
		IsCompleted: completed,
		CreatedAt:   item.CreatedAt,
	}
}

// QuestionView is a quiz question with the correct answer stripped.
type QuestionView struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Points  int64    `json:"points"`
}

// ItemDetail is the full item view returned when a member opens one item.
type ItemDetail struct {
	ID              uuid.UUID        `json:"id"`
	Kind            Kind             `json:"kind"`
	Title           string           `json:"title"`
	Body            string           `json:"body"`
	PointsAward     int64            `json:"points_award"`
	CoinsAward      int64            `json:"coins_award"`
	MinProgressPct  int              `json:"min_progress_pct"`
	Questions       []QuestionView   `json:"questions,omitempty"`
	SurveyQuestions []SurveyQuestion `json:"survey_questions,omitempty"`
	Progress        *Progress        `json:"progress,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

func toItemDetail(item *Item, progress *Progress) *ItemDetail {
	detail := &ItemDetail{
		ID:             item.ID,
		Kind:           item.Kind,
		Title:          item.Title,
		Body:           item.Body,
		PointsAward:    item.PointsAward,
		CoinsAward:     item.CoinsAward,
		MinProgressPct: item.MinProgressPct,
		Progress:       progress,
		CreatedAt:      item.CreatedAt,
	}
	for _, q := range item.Quiz {
		detail.Questions = append(detail.Questions, QuestionView{
			ID:      q.ID,
			Text:    q.Text,
			Options: q.Options,
			Points:  q.Points,
		})
	}
	detail.SurveyQuestions = item.Survey
	return detail
}
