package member

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RefreshTokenRepository stores refresh token hashes in Redis so a token
// can be revoked (rotated) without a database round trip per request.
type RefreshTokenRepository struct {
	rdb *redis.Client
}

func NewRefreshTokenRepository(rdb *redis.Client) *RefreshTokenRepository {
	return &RefreshTokenRepository{rdb: rdb}
}

func refreshKey(memberID uuid.UUID, jti string) string {
	return fmt.Sprintf("refresh:%s:%s", memberID, jti)
}

// Save stores the hash of a refresh token until it expires.
func (r *RefreshTokenRepository) Save(ctx context.Context, memberID uuid.UUID, jti, tokenHash string, expiresAt time.Time) error {
	if r.rdb == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, refreshKey(memberID, jti), tokenHash, ttl).Err()
}

// Validate checks a presented token hash against the stored one.
func (r *RefreshTokenRepository) Validate(ctx context.Context, memberID uuid.UUID, jti, tokenHash string) error {
	if r.rdb == nil {
		// Without Redis the signed JWT itself is the only check.
		return nil
	}
	stored, err := r.rdb.Get(ctx, refreshKey(memberID, jti)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrInvalidRefresh
	}
	if err != nil {
		return fmt.Errorf("validate refresh token: %w", err)
	}
	if stored != tokenHash {
		return ErrInvalidRefresh
	}
	return nil
}

// Revoke deletes a stored refresh token (rotation or logout).
func (r *RefreshTokenRepository) Revoke(ctx context.Context, memberID uuid.UUID, jti string) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Del(ctx, refreshKey(memberID, jti)).Err()
}
