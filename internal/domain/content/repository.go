package content

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

// ListPublished returns published items, optionally filtered by kind.
func (r *Repository) ListPublished(ctx context.Context, kind Kind) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT id, kind, title, body, points_award, coins_award, min_progress_pct,
		       quiz, survey, targeting, is_published, created_at, updated_at
		FROM content_items
		WHERE is_published = true`
	args := []interface{}{}
	if kind != "" {
		query += ` AND kind = $1`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC`

	items := []Item{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return items, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var item Item
	err := r.db.GetContext(ctx, &item, `
		SELECT id, kind, title, body, points_award, coins_award, min_progress_pct,
		       quiz, survey, targeting, is_published, created_at, updated_at
		FROM content_items
		WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get content item: %w", err)
	}
	return &item, nil
}

// GetProgress returns the member's progress row for one item, or nil when
// no attempt exists yet.
func (r *Repository) GetProgress(ctx context.Context, memberID, contentID uuid.UUID) (*Progress, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p Progress
	err := r.db.GetContext(ctx, &p, `
		SELECT id, profile_id, content_id, is_completed, points_earned, coins_earned, quiz_score, responses, completed_at, created_at
		FROM content_progress
		WHERE profile_id = $1 AND content_id = $2`, memberID, contentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return &p, nil
}

// ListProgress returns all of a member's progress rows.
func (r *Repository) ListProgress(ctx context.Context, memberID uuid.UUID) ([]Progress, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows := []Progress{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, profile_id, content_id, is_completed, points_earned, coins_earned, quiz_score, responses, completed_at, created_at
		FROM content_progress
		WHERE profile_id = $1
		ORDER BY created_at DESC`, memberID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return rows, nil
}

// Complete marks the item done and pays the award in one transaction. The
// upsert is guarded on is_completed = false, so a concurrent or repeated
// submission collapses to a no-op: the existing record comes back and no
// second award is paid. The bool result reports whether this call did the
// completing.
func (r *Repository) Complete(ctx context.Context, memberID, contentID uuid.UUID, source string, points, coins int64, quizScore *int64, responses Responses) (*Progress, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var p Progress
	err = tx.GetContext(ctx, &p, `
		INSERT INTO content_progress (id, profile_id, content_id, is_completed, points_earned, coins_earned, quiz_score, responses, completed_at, created_at)
		VALUES ($1, $2, $3, true, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (profile_id, content_id) DO UPDATE
		SET is_completed = true,
		    points_earned = EXCLUDED.points_earned,
		    coins_earned = EXCLUDED.coins_earned,
		    quiz_score = EXCLUDED.quiz_score,
		    responses = EXCLUDED.responses,
		    completed_at = NOW()
		WHERE content_progress.is_completed = false
		RETURNING id, profile_id, content_id, is_completed, points_earned, coins_earned, quiz_score, responses, completed_at, created_at`,
		uuid.New(), memberID, contentID, points, coins, quizScore, responses)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Already completed: surface the original record untouched.
			existing, getErr := r.GetProgress(ctx, memberID, contentID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("upsert progress: %w", err)
	}

	meta := ledger.TxMeta{Source: source, SourceID: &contentID, Description: "content completion"}
	if points > 0 {
		if err := r.ledger.AddTx(ctx, tx, memberID, ledger.CurrencyPoints, points, meta); err != nil {
			return nil, false, err
		}
	}
	if coins > 0 {
		if err := r.ledger.AddTx(ctx, tx, memberID, ledger.CurrencyCoins, coins, meta); err != nil {
			return nil, false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit completion: %w", err)
	}
	return &p, true, nil
}
