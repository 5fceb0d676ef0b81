package reward

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/agripoint/loyalty-api/internal/domain/ledger"
	"github.com/agripoint/loyalty-api/internal/domain/member"
	"github.com/agripoint/loyalty-api/internal/domain/targeting"
)

const queryTimeout = 3 * time.Second

type Repository struct {
	db     *sqlx.DB
	ledger *ledger.Repository
}

func NewRepository(db *sqlx.DB, ledgerRepo *ledger.Repository) *Repository {
	return &Repository{db: db, ledger: ledgerRepo}
}

// ListActive returns all active rewards. Eligibility filtering happens in
// the service; targeting can reference member attributes this query does
// not see.
func (r *Repository) ListActive(ctx context.Context) ([]Reward, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rewards := []Reward{}
	err := r.db.SelectContext(ctx, &rewards, `
		SELECT id, title, description, image_url, points_cost, tier_points_cost,
		       stock_quantity, targeting, is_active, created_at, updated_at
		FROM rewards
		WHERE is_active = true
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	return rewards, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Reward, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var rw Reward
	err := r.db.GetContext(ctx, &rw, `
		SELECT id, title, description, image_url, points_cost, tier_points_cost,
		       stock_quantity, targeting, is_active, created_at, updated_at
		FROM rewards
		WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reward: %w", err)
	}
	return &rw, nil
}

// Redeem runs the whole redemption as one transaction: re-validate
// activity, eligibility and price against a locked snapshot, decrement
// stock behind a guard, charge the points ledger, and record the request.
// Any failure aborts with no partial effect.
func (r *Repository) Redeem(ctx context.Context, memberID, rewardID uuid.UUID, expectedPrice *int64, shippingAddress, notes string) (*Redemption, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var rw Reward
	err = tx.GetContext(ctx, &rw, `
		SELECT id, title, description, image_url, points_cost, tier_points_cost,
		       stock_quantity, targeting, is_active, created_at, updated_at
		FROM rewards
		WHERE id = $1
		FOR UPDATE`, rewardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock reward: %w", err)
	}

	var m member.Member
	err = tx.GetContext(ctx, &m, `
		SELECT id, email, password_hash, role, display_name, tier, member_type,
		       approval_status, total_points, total_coins, created_at, updated_at
		FROM member_profiles
		WHERE id = $1
		FOR UPDATE`, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, member.ErrNotFound
		}
		return nil, fmt.Errorf("lock member: %w", err)
	}
	if !m.IsApproved() {
		return nil, member.ErrNotApproved
	}

	if !rw.IsActive {
		return nil, ErrNotActive
	}

	var subType string
	err = tx.GetContext(ctx, &subType, `
		SELECT sub_type FROM member_occupations
		WHERE profile_id = $1 AND member_type = $2`, memberID, m.MemberType)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("resolve sub-type: %w", err)
	}

	if !rw.Targeting.Matches(targeting.Audience{Tier: m.Tier, MemberType: m.MemberType, SubType: subType}) {
		return nil, ErrIneligible
	}

	price := EffectivePrice(&rw, m.Tier)
	if expectedPrice != nil && *expectedPrice != price {
		return nil, ErrPriceMismatch
	}

	if m.TotalPoints < price {
		return nil, ledger.ErrInsufficientBalance
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE rewards
		SET stock_quantity = stock_quantity - 1, updated_at = NOW()
		WHERE id = $1 AND stock_quantity > 0`, rewardID)
	if err != nil {
		return nil, fmt.Errorf("decrement stock: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return nil, ErrOutOfStock
	}

	if price > 0 {
		err = r.ledger.DeductTx(ctx, tx, memberID, ledger.CurrencyPoints, price, ledger.TxMeta{
			Source:      ledger.SourceReward,
			SourceID:    &rewardID,
			Description: "redeem: " + rw.Title,
		})
		if err != nil {
			return nil, err
		}
	}

	var red Redemption
	err = tx.GetContext(ctx, &red, `
		INSERT INTO redemption_requests (id, profile_id, reward_id, points_spent, status, shipping_address, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, profile_id, reward_id, points_spent, status, shipping_address, notes, tracking_number, created_at, updated_at`,
		uuid.New(), memberID, rewardID, price, StatusPending, shippingAddress, notes)
	if err != nil {
		return nil, fmt.Errorf("insert redemption: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit redeem: %w", err)
	}
	return &red, nil
}

// ListRedemptions returns a member's redemption requests, newest first.
func (r *Repository) ListRedemptions(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]Redemption, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	reds := []Redemption{}
	err := r.db.SelectContext(ctx, &reds, `
		SELECT id, profile_id, reward_id, points_spent, status, shipping_address, notes, tracking_number, created_at, updated_at
		FROM redemption_requests
		WHERE profile_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, memberID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list redemptions: %w", err)
	}
	return reds, nil
}

// ListAllRedemptions returns redemption requests across members, optionally
// filtered by status. Admin console use.
func (r *Repository) ListAllRedemptions(ctx context.Context, status Status, limit, offset int) ([]Redemption, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT id, profile_id, reward_id, points_spent, status, shipping_address, notes, tracking_number, created_at, updated_at
		FROM redemption_requests`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	reds := []Redemption{}
	if err := r.db.SelectContext(ctx, &reds, query, args...); err != nil {
		return nil, fmt.Errorf("list all redemptions: %w", err)
	}
	return reds, nil
}

// UpdateRedemptionStatus moves a request to the next state. The update is
// guarded on the expected current status so two admins cannot race a
// transition.
func (r *Repository) UpdateRedemptionStatus(ctx context.Context, id uuid.UUID, from, to Status, trackingNumber string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		UPDATE redemption_requests
		SET status = $3,
		    tracking_number = CASE WHEN $4 <> '' THEN $4 ELSE tracking_number END,
		    updated_at = NOW()
		WHERE id = $1 AND status = $2`, id, from, to, trackingNumber)
	if err != nil {
		return fmt.Errorf("update redemption status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// GetRedemption loads one redemption request.
func (r *Repository) GetRedemption(ctx context.Context, id uuid.UUID) (*Redemption, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var red Redemption
	err := r.db.GetContext(ctx, &red, `
		SELECT id, profile_id, reward_id, points_spent, status, shipping_address, notes, tracking_number, created_at, updated_at
		FROM redemption_requests
		WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRedemptionNotFound
		}
		return nil, fmt.Errorf("get redemption: %w", err)
	}
	return &red, nil
}
