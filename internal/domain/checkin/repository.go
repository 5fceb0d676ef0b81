package checkin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/agripoint/loyalty-api/internal/domain/ledger"
)

const queryTimeout = 3 * time.Second

type Repository struct {
	db     *sqlx.DB
	ledger *ledger.Repository
}

func NewRepository(db *sqlx.DB, ledgerRepo *ledger.Repository) *Repository {
	return &Repository{db: db, ledger: ledgerRepo}
}

// Schedule returns the reward cycle ordered by day.
func (r *Repository) Schedule(ctx context.Context) ([]RewardDay, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	days := []RewardDay{}
	if err := r.db.SelectContext(ctx, &days, `SELECT day, points, coins, is_bonus FROM checkin_rewards ORDER BY day`); err != nil {
		return nil, fmt.Errorf("load checkin schedule: %w", err)
	}
	return days, nil
}

// Get returns the member's check-in for one date, or nil.
func (r *Repository) Get(ctx context.Context, memberID uuid.UUID, date time.Time) (*Checkin, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c Checkin
	err := r.db.GetContext(ctx, &c, `
		SELECT id, profile_id, checkin_date, streak_day, points_earned, coins_earned, created_at
		FROM daily_checkins
		WHERE profile_id = $1 AND checkin_date = $2`, memberID, date.Format("2006-01-02"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get checkin: %w", err)
	}
	return &c, nil
}

// Create records today's check-in and pays the award in one transaction.
// The yesterday lookup, streak computation, insert and award all run
// inside the transaction; the unique (profile_id, checkin_date) constraint
// collapses a duplicate submission into a no-op that returns the existing
// row. The bool result reports whether this call created the check-in.
func (r *Repository) Create(ctx context.Context, memberID uuid.UUID, today time.Time, schedule []RewardDay) (*Checkin, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	todayStr := today.Format("2006-01-02")
	yesterdayStr := today.AddDate(0, 0, -1).Format("2006-01-02")

	var yesterdayStreak int
	hadYesterday := true
	err = tx.GetContext(ctx, &yesterdayStreak, `
		SELECT streak_day FROM daily_checkins
		WHERE profile_id = $1 AND checkin_date = $2`, memberID, yesterdayStr)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, false, fmt.Errorf("get yesterday checkin: %w", err)
		}
		hadYesterday = false
	}

	streak := NextStreak(hadYesterday, yesterdayStreak)
	reward := RewardFor(streak, schedule)

	var c Checkin
	err = tx.GetContext(ctx, &c, `
		INSERT INTO daily_checkins (id, profile_id, checkin_date, streak_day, points_earned, coins_earned, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (profile_id, checkin_date) DO NOTHING
		RETURNING id, profile_id, checkin_date, streak_day, points_earned, coins_earned, created_at`,
		uuid.New(), memberID, todayStr, streak, reward.Points, reward.Coins)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Already checked in today.
			existing, getErr := r.Get(ctx, memberID, today)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("insert checkin: %w", err)
	}

	meta := ledger.TxMeta{Source: ledger.SourceDailyCheckin, SourceID: &c.ID, Description: fmt.Sprintf("day %d check-in", streak)}
	if reward.Points > 0 {
		if err := r.ledger.AddTx(ctx, tx, memberID, ledger.CurrencyPoints, reward.Points, meta); err != nil {
			return nil, false, err
		}
	}
	if reward.Coins > 0 {
		if err := r.ledger.AddTx(ctx, tx, memberID, ledger.CurrencyCoins, reward.Coins, meta); err != nil {
			return nil, false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit checkin: %w", err)
	}
	return &c, true, nil
}
