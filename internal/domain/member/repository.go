package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const queryTimeout = 3 * time.Second

// Repository provides member profile persistence.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, m *Member) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		INSERT INTO member_profiles (id, email, password_hash, role, display_name, tier, member_type, approval_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, m.ID, m.Email, m.PasswordHash, m.Role, m.DisplayName, m.Tier, m.MemberType, m.ApprovalStatus)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Member, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var m Member
	err := r.db.GetContext(ctx2, &m, `SELECT * FROM member_profiles WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &m, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*Member, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var m Member
	err := r.db.GetContext(ctx2, &m, `SELECT * FROM member_profiles WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get member by email: %w", err)
	}
	return &m, nil
}

// UpsertOccupation records the member's occupation detail for one member
// type. One row per (profile, member_type); re-registration overwrites.
func (r *Repository) UpsertOccupation(ctx context.Context, profileID uuid.UUID, memberType Type, subType string) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		INSERT INTO member_occupations (profile_id, member_type, sub_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (profile_id, member_type) DO UPDATE SET sub_type = EXCLUDED.sub_type
	`, profileID, memberType, subType)
	if err != nil {
		return fmt.Errorf("upsert occupation: %w", err)
	}
	return nil
}

// ResolveSubType derives the member's sub-type: the sub_type of the
// occupation row matching their current member_type. Returns "" when no
// such row exists — callers must treat that as unresolved, not wildcard.
func (r *Repository) ResolveSubType(ctx context.Context, profileID uuid.UUID, memberType Type) (string, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var subType string
	err := r.db.GetContext(ctx2, &subType, `
		SELECT sub_type FROM member_occupations
		WHERE profile_id = $1 AND member_type = $2
	`, profileID, memberType)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("resolve sub type: %w", err)
	}
	return subType, nil
}

// SetApprovalStatus transitions a pending member. Guarded so an already
// reviewed registration cannot be flipped by a concurrent reviewer.
func (r *Repository) SetApprovalStatus(ctx context.Context, id uuid.UUID, status ApprovalStatus) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx2, `
		UPDATE member_profiles
		SET approval_status = $2, updated_at = now()
		WHERE id = $1 AND approval_status = 'pending'
	`, id, status)
	if err != nil {
		return fmt.Errorf("set approval status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set approval status: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
