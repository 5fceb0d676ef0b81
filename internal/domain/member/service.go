package member

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/agripoint/loyalty-api/internal/pkg/jwt"
	"github.com/agripoint/loyalty-api/internal/pkg/password"
)

// BonusAwarder grants the one-time registration bonus. Implemented by the
// ledger service; an interface here keeps this package off the ledger's
// import graph.
type BonusAwarder interface {
	AwardRegistrationBonus(ctx context.Context, memberID uuid.UUID, amount int64) error
}

type Service struct {
	repo        *Repository
	refreshRepo *RefreshTokenRepository
	jwtService  *jwt.Service
	bonus       BonusAwarder
	bonusPoints int64
}

func NewService(repo *Repository, refreshRepo *RefreshTokenRepository, jwtService *jwt.Service, bonus BonusAwarder, bonusPoints int64) *Service {
	return &Service{
		repo:        repo,
		refreshRepo: refreshRepo,
		jwtService:  jwtService,
		bonus:       bonus,
		bonusPoints: bonusPoints,
	}
}

// TokenPair is an issued access/refresh pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Register creates a member pending approval, records their occupation
// detail and grants the registration bonus.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Member, *TokenPair, error) {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	m := &Member{
		ID:             uuid.New(),
		Email:          req.Email,
		PasswordHash:   hash,
		Role:           "member",
		DisplayName:    req.DisplayName,
		Tier:           TierBronze,
		MemberType:     Type(req.MemberType),
		ApprovalStatus: ApprovalPending,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, nil, err
	}

	if req.SubType != "" {
		if err := s.repo.UpsertOccupation(ctx, m.ID, m.MemberType, req.SubType); err != nil {
			return nil, nil, err
		}
	}

	if s.bonus != nil && s.bonusPoints > 0 {
		if err := s.bonus.AwardRegistrationBonus(ctx, m.ID, s.bonusPoints); err != nil {
			// The account exists; a missed bonus is recoverable by support.
			log.Error().Err(err).Str("member_id", m.ID.String()).Msg("registration bonus award failed")
		}
	}

	tokens, err := s.issueTokens(ctx, m)
	if err != nil {
		return nil, nil, err
	}

	log.Info().Str("member_id", m.ID.String()).Str("member_type", string(m.MemberType)).Msg("member registered")
	return m, tokens, nil
}

// Login verifies credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, email, plaintext string) (*Member, *TokenPair, error) {
	m, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	if !password.Verify(plaintext, m.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, m)
	if err != nil {
		return nil, nil, err
	}
	return m, tokens, nil
}

// Refresh rotates a refresh token and issues a new pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	hash := jwt.HashRefreshToken(refreshToken)
	if err := s.refreshRepo.Validate(ctx, claims.MemberID, claims.ID, hash); err != nil {
		return nil, err
	}
	if err := s.refreshRepo.Revoke(ctx, claims.MemberID, claims.ID); err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(ctx, claims.MemberID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, m)
}

// GetProfile loads a member with their resolved sub-type.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*Member, string, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	subType, err := s.repo.ResolveSubType(ctx, m.ID, m.MemberType)
	if err != nil {
		return nil, "", err
	}
	return m, subType, nil
}

// Approve transitions a pending registration. Admin only.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, approved bool) error {
	status := ApprovalApproved
	if !approved {
		status = ApprovalRejected
	}
	if err := s.repo.SetApprovalStatus(ctx, id, status); err != nil {
		return err
	}
	log.Info().Str("member_id", id.String()).Str("status", string(status)).Msg("member registration reviewed")
	return nil
}

func (s *Service) issueTokens(ctx context.Context, m *Member) (*TokenPair, error) {
	access, err := s.jwtService.GenerateAccessToken(m.ID, m.Role)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refresh, jti, expiresAt, err := s.jwtService.GenerateRefreshToken(m.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	if err := s.refreshRepo.Save(ctx, m.ID, jti, jwt.HashRefreshToken(refresh), expiresAt); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
