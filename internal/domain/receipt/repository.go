package receipt

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

func (r *Repository) Create(ctx context.Context, rec *Receipt) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO receipts (id, profile_id, image_key, store_name, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		rec.ID, rec.ProfileID, rec.ImageKey, rec.StoreName, rec.Amount, rec.Status)
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var rec Receipt
	err := r.db.GetContext(ctx, &rec, `
		SELECT id, profile_id, image_key, store_name, amount, status, points_earned, review_notes, reviewed_at, created_at
		FROM receipts
		WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return &rec, nil
}

// ListByMember returns a member's receipts, newest first.
func (r *Repository) ListByMember(ctx context.Context, memberID uuid.UUID, limit, offset int) ([]Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	recs := []Receipt{}
	err := r.db.SelectContext(ctx, &recs, `
		SELECT id, profile_id, image_key, store_name, amount, status, points_earned, review_notes, reviewed_at, created_at
		FROM receipts
		WHERE profile_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, memberID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return recs, nil
}

// ListByStatus returns receipts in one state for the review queue, oldest
// first so reviewers work in submission order.
func (r *Repository) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	recs := []Receipt{}
	err := r.db.SelectContext(ctx, &recs, `
		SELECT id, profile_id, image_key, store_name, amount, status, points_earned, review_notes, reviewed_at, created_at
		FROM receipts
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list receipts by status: %w", err)
	}
	return recs, nil
}

// Approve flips a pending receipt to approved and pays the points in one
// transaction. The status update is guarded on pending, so a receipt can
// only be paid once no matter how many reviewers race it.
func (r *Repository) Approve(ctx context.Context, id, memberID uuid.UUID, points int64, notes string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE receipts
		SET status = 'approved', points_earned = $2, review_notes = $3, reviewed_at = NOW()
		WHERE id = $1 AND status = 'pending'`, id, points, notes)
	if err != nil {
		return fmt.Errorf("approve receipt: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrAlreadyReviewed
	}

	if points > 0 {
		err = r.ledger.AddTx(ctx, tx, memberID, ledger.CurrencyPoints, points, ledger.TxMeta{
			Source:      ledger.SourceReceipt,
			SourceID:    &id,
			Description: "receipt approved",
		})
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Reject flips a pending receipt to rejected. No ledger movement.
func (r *Repository) Reject(ctx context.Context, id uuid.UUID, notes string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		UPDATE receipts
		SET status = 'rejected', review_notes = $2, reviewed_at = NOW()
		WHERE id = $1 AND status = 'pending'`, id, notes)
	if err != nil {
		return fmt.Errorf("reject receipt: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrAlreadyReviewed
	}
	return nil
}
