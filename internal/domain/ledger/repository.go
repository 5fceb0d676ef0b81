package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// tierResyncQuery rewrites the stored tier from the points balance inside
// the same transaction that changed it. The ladder lives in tier_settings;
// the highest threshold at or below the balance wins.
const tierResyncQuery = `
	UPDATE member_profiles
	SET tier = COALESCE(
		(SELECT ts.tier FROM tier_settings ts
		 WHERE ts.min_points <= member_profiles.total_points
		 ORDER BY ts.min_points DESC LIMIT 1),
		tier)
	WHERE id = $1`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Add credits the member's balance and appends an earn row in one
// transaction.
func (r *Repository) Add(ctx context.Context, memberID uuid.UUID, currency Currency, amount int64, meta TxMeta) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := r.AddTx(ctx, tx, memberID, currency, amount, meta); err != nil {
		return err
	}
	return tx.Commit()
}

// Deduct debits the member's balance and appends a spend row in one
// transaction. Fails with ErrInsufficientBalance when the balance cannot
// cover the amount.
func (r *Repository) Deduct(ctx context.Context, memberID uuid.UUID, currency Currency, amount int64, meta TxMeta) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := r.DeductTx(ctx, tx, memberID, currency, amount, meta); err != nil {
		return err
	}
	return tx.Commit()
}

// AddTx credits the balance within the caller's transaction.
func (r *Repository) AddTx(ctx context.Context, tx *sqlx.Tx, memberID uuid.UUID, currency Currency, amount int64, meta TxMeta) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		UPDATE member_profiles
		SET %s = %s + $2, updated_at = NOW()
		WHERE id = $1`, currency.balanceColumn(), currency.balanceColumn())

	result, err := tx.ExecContext(ctx, query, memberID, amount)
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrMemberNotFound
	}

	if err := r.insertTx(ctx, tx, memberID, currency, amount, TxTypeEarn, meta); err != nil {
		return err
	}

	if currency == CurrencyPoints {
		if _, err := tx.ExecContext(ctx, tierResyncQuery, memberID); err != nil {
			return fmt.Errorf("resync tier: %w", err)
		}
	}
	return nil
}

// DeductTx debits the balance within the caller's transaction. The profile
// row is locked first so concurrent spends serialize on it.
func (r *Repository) DeductTx(ctx context.Context, tx *sqlx.Tx, memberID uuid.UUID, currency Currency, amount int64, meta TxMeta) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var balance int64
	lockQuery := fmt.Sprintf(`SELECT %s FROM member_profiles WHERE id = $1 FOR UPDATE`, currency.balanceColumn())
	if err := tx.GetContext(ctx, &balance, lockQuery, memberID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("lock profile: %w", err)
	}
	if balance < amount {
		return ErrInsufficientBalance
	}

	query := fmt.Sprintf(`
		UPDATE member_profiles
		SET %s = %s - $2, updated_at = NOW()
		WHERE id = $1 AND %s >= $2`,
		currency.balanceColumn(), currency.balanceColumn(), currency.balanceColumn())

	result, err := tx.ExecContext(ctx, query, memberID, amount)
	if err != nil {
		return fmt.Errorf("debit balance: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return ErrInsufficientBalance
	}

	if err := r.insertTx(ctx, tx, memberID, currency, amount, TxTypeSpend, meta); err != nil {
		return err
	}

	if currency == CurrencyPoints {
		if _, err := tx.ExecContext(ctx, tierResyncQuery, memberID); err != nil {
			return fmt.Errorf("resync tier: %w", err)
		}
	}
	return nil
}

func (r *Repository) insertTx(ctx context.Context, tx *sqlx.Tx, memberID uuid.UUID, currency Currency, amount int64, txType TxType, meta TxMeta) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, profile_id, amount, transaction_type, source, source_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`, currency.table())

	_, err := tx.ExecContext(ctx, query,
		uuid.New(), memberID, amount, txType, meta.Source, meta.SourceID, meta.Description)
	if err != nil {
		return fmt.Errorf("insert %s transaction: %w", currency, err)
	}
	return nil
}

// List returns a member's transactions for one currency, newest first.
func (r *Repository) List(ctx context.Context, memberID uuid.UUID, currency Currency, limit, offset int) ([]Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT id, profile_id, amount, transaction_type, source, source_id, description, created_at
		FROM %s
		WHERE profile_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, currency.table())

	txs := []Transaction{}
	if err := r.db.SelectContext(ctx, &txs, query, memberID, limit, offset); err != nil {
		return nil, fmt.Errorf("list %s transactions: %w", currency, err)
	}
	return txs, nil
}

// Count returns the total number of transactions for one currency.
func (r *Repository) Count(ctx context.Context, memberID uuid.UUID, currency Currency) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE profile_id = $1`, currency.table())
	if err := r.db.GetContext(ctx, &count, query, memberID); err != nil {
		return 0, fmt.Errorf("count %s transactions: %w", currency, err)
	}
	return count, nil
}

// SumLedger returns the signed sum of a member's ledger rows for one
// currency (earns positive, spends negative). Used by the reconcile sweep.
func (r *Repository) SumLedger(ctx context.Context, memberID uuid.UUID, currency Currency) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var sum int64
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(CASE WHEN transaction_type = 'earn' THEN amount ELSE -amount END), 0)
		FROM %s WHERE profile_id = $1`, currency.table())
	if err := r.db.GetContext(ctx, &sum, query, memberID); err != nil {
		return 0, fmt.Errorf("sum %s ledger: %w", currency, err)
	}
	return sum, nil
}
