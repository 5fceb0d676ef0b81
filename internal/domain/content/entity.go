package content

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agripoint/loyalty-api/internal/domain/targeting"
)

// Kind is the content item variety.
type Kind string

const (
	KindArticle Kind = "article"
	KindVideo   Kind = "video"
	KindQuiz    Kind = "quiz"
	KindSurvey  Kind = "survey"
)

// QuizQuestion is a single multiple-choice question. Answer is the index
// into Options of the correct choice.
type QuizQuestion struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
	Points  int64    `json:"points"`
}

// Quiz is a content item's question list, stored as JSONB.
type Quiz []QuizQuestion

func (q Quiz) Value() (driver.Value, error) {
	if q == nil {
		return nil, nil
	}
	b, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("marshal quiz: %w", err)
	}
	return string(b), nil
}

func (q *Quiz) Scan(src interface{}) error {
	return scanJSON(src, q, "quiz")
}

// SurveyQuestion is a free-form survey prompt.
type SurveyQuestion struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Required bool   `json:"required"`
}

// Survey is a content item's survey definition, stored as JSONB.
type Survey []SurveyQuestion

func (s Survey) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal survey: %w", err)
	}
	return string(b), nil
}

func (s *Survey) Scan(src interface{}) error {
	return scanJSON(src, s, "survey")
}

// Responses holds a member's submitted survey answers keyed by question ID.
type Responses map[string]string

func (r Responses) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal responses: %w", err)
	}
	return string(b), nil
}

func (r *Responses) Scan(src interface{}) error {
	return scanJSON(src, r, "responses")
}

func scanJSON(src, dst interface{}, what string) error {
	var b []byte
	switch v := src.(type) {
	case string:
		b = []byte(v)
	case []byte:
		b = v
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported %s type %T", what, src)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}

// Item is a content entry (matches content_items table).
type Item struct {
	ID             uuid.UUID       `db:"id"`
	Kind           Kind            `db:"kind"`
	Title          string          `db:"title"`
	Body           string          `db:"body"`
	PointsAward    int64           `db:"points_award"`
	CoinsAward     int64           `db:"coins_award"`
	MinProgressPct int             `db:"min_progress_pct"`
	Quiz           Quiz            `db:"quiz"`
	Survey         Survey          `db:"survey"`
	Targeting      targeting.Rules `db:"targeting"`
	IsPublished    bool            `db:"is_published"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// Progress is a member's completion record for one item (matches
// content_progress table). At most one row per (member, item); a completed
// row is never re-awarded.
type Progress struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	ProfileID    uuid.UUID  `db:"profile_id" json:"profile_id"`
	ContentID    uuid.UUID  `db:"content_id" json:"content_id"`
	IsCompleted  bool       `db:"is_completed" json:"is_completed"`
	PointsEarned int64      `db:"points_earned" json:"points_earned"`
	CoinsEarned  int64      `db:"coins_earned" json:"coins_earned"`
	QuizScore    *int64     `db:"quiz_score" json:"quiz_score,omitempty"`
	Responses    Responses  `db:"responses" json:"responses,omitempty"`
	CompletedAt  *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
