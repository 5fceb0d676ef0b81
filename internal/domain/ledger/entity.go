package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Currency selects which of the two structurally identical ledgers an
// operation acts on.
type Currency string

const (
	CurrencyPoints Currency = "points"
	CurrencyCoins  Currency = "coins"
)

// table returns the append-only transaction table for the currency.
func (c Currency) table() string {
	if c == CurrencyCoins {
		return "coin_transactions"
	}
	return "point_transactions"
}

// balanceColumn returns the denormalized balance column on member_profiles.
func (c Currency) balanceColumn() string {
	if c == CurrencyCoins {
		return "total_coins"
	}
	return "total_points"
}

// TxType is the direction of a ledger transaction.
type TxType string

const (
	TxTypeEarn  TxType = "earn"
	TxTypeSpend TxType = "spend"
)

// Source categories for ledger transactions.
const (
	SourceDailyCheckin = "daily_checkin"
	SourceContent      = "content"
	SourceQuiz         = "quiz"
	SourceSurvey       = "survey"
	SourceReceipt      = "receipt"
	SourceGame         = "game"
	SourceMission      = "mission"
	SourceReward       = "reward"
	SourceRegistration = "registration"
)

// TxMeta carries the audit fields attached to a ledger transaction.
type TxMeta struct {
	Source      string
	SourceID    *uuid.UUID
	Description string
}

// Transaction is an immutable ledger row. Amount is always positive;
// direction is carried by TxType.
type Transaction struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	ProfileID       uuid.UUID  `db:"profile_id" json:"profile_id"`
	Amount          int64      `db:"amount" json:"amount"`
	TransactionType TxType     `db:"transaction_type" json:"transaction_type"`
	Source          string     `db:"source" json:"source"`
	SourceID        *uuid.UUID `db:"source_id" json:"source_id,omitempty"`
	Description     string     `db:"description" json:"description"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}
