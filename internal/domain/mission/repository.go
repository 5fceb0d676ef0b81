package mission

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

func (r *Repository) ListActive(ctx context.Context) ([]Mission, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	missions := []Mission{}
	err := r.db.SelectContext(ctx, &missions, `
		SELECT id, title, description, proof_kind, qr_code, points_award, coins_award,
		       overrides, targeting, is_active, created_at, updated_at
		FROM missions
		WHERE is_active = true
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list missions: %w", err)
	}
	return missions, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Mission, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var m Mission
	err := r.db.GetContext(ctx, &m, `
		SELECT id, title, description, proof_kind, qr_code, points_award, coins_award,
		       overrides, targeting, is_active, created_at, updated_at
		FROM missions
		WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get mission: %w", err)
	}
	return &m, nil
}

// GetCompletion returns the member's completion for one mission, or nil.
func (r *Repository) GetCompletion(ctx context.Context, memberID, missionID uuid.UUID) (*Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c Completion
	err := r.db.GetContext(ctx, &c, `
		SELECT id, profile_id, mission_id, is_completed, points_earned, coins_earned, proof, completed_at, created_at
		FROM mission_completions
		WHERE profile_id = $1 AND mission_id = $2`, memberID, missionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get completion: %w", err)
	}
	return &c, nil
}

func (r *Repository) ListCompletions(ctx context.Context, memberID uuid.UUID) ([]Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows := []Completion{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, profile_id, mission_id, is_completed, points_earned, coins_earned, proof, completed_at, created_at
		FROM mission_completions
		WHERE profile_id = $1
		ORDER BY created_at DESC`, memberID)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	return rows, nil
}

// Complete records the completion and pays the award in one transaction.
// The insert is guarded on is_completed = false so a duplicate submission
// returns the original record without a second award. The bool result
// reports whether this call did the completing.
func (r *Repository) Complete(ctx context.Context, memberID, missionID uuid.UUID, award Award, proof string) (*Completion, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var c Completion
	err = tx.GetContext(ctx, &c, `
		INSERT INTO mission_completions (id, profile_id, mission_id, is_completed, points_earned, coins_earned, proof, completed_at, created_at)
		VALUES ($1, $2, $3, true, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (profile_id, mission_id) DO UPDATE
		SET is_completed = true,
		    points_earned = EXCLUDED.points_earned,
		    coins_earned = EXCLUDED.coins_earned,
		    proof = EXCLUDED.proof,
		    completed_at = NOW()
		WHERE mission_completions.is_completed = false
		RETURNING id, profile_id, mission_id, is_completed, points_earned, coins_earned, proof, completed_at, created_at`,
		uuid.New(), memberID, missionID, award.Points, award.Coins, proof)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			existing, getErr := r.GetCompletion(ctx, memberID, missionID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("upsert completion: %w", err)
	}

	meta := ledger.TxMeta{Source: ledger.SourceMission, SourceID: &missionID, Description: "mission completion"}
	if award.Points > 0 {
		if err := r.ledger.AddTx(ctx, tx, memberID, ledger.CurrencyPoints, award.Points, meta); err != nil {
			return nil, false, err
		}
	}
	if award.Coins > 0 {
		if err := r.ledger.AddTx(ctx, tx, memberID, ledger.CurrencyCoins, award.Coins, meta); err != nil {
			return nil, false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit completion: %w", err)
	}
	return &c, true, nil
}
