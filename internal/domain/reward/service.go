package reward

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/agripoint/loyalty-api/internal/domain/member"
	"github.com/agripoint/loyalty-api/internal/domain/targeting"
)

// allowedTransitions is the redemption lifecycle. Completed and cancelled
// are terminal.
var allowedTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusCompleted},
}

type Service struct {
	repo       *Repository
	memberRepo *member.Repository
}

func NewService(repo *Repository, memberRepo *member.Repository) *Service {
	return &Service{repo: repo, memberRepo: memberRepo}
}

// Catalog returns the active rewards the member is eligible for, each
// priced at the member's tier.
func (s *Service) Catalog(ctx context.Context, memberID uuid.UUID) ([]CatalogItem, error) {
	m, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	subType, err := s.memberRepo.ResolveSubType(ctx, memberID, m.MemberType)
	if err != nil {
		return nil, err
	}
	aud := targeting.Audience{Tier: m.Tier, MemberType: m.MemberType, SubType: subType}

	rewards, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	items := []CatalogItem{}
	for i := range rewards {
		if !rewards[i].Targeting.Matches(aud) {
			continue
		}
		items = append(items, toCatalogItem(&rewards[i], m.Tier))
	}
	return items, nil
}

// Redeem charges the member and records a pending redemption request.
func (s *Service) Redeem(ctx context.Context, memberID, rewardID uuid.UUID, expectedPrice *int64, shippingAddress, notes string) (*Redemption, error) {
	red, err := s.repo.Redeem(ctx, memberID, rewardID, expectedPrice, shippingAddress, notes)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("member_id", memberID.String()).
		Str("reward_id", rewardID.String()).
		Str("redemption_id", red.ID.String()).
		Int64("points_spent", red.PointsSpent).
		Msg("reward redeemed")
	return red, nil
}

// MyRedemptions returns a page of the member's redemption requests.
func (s *Service) MyRedemptions(ctx context.Context, memberID uuid.UUID, page, limit int) ([]Redemption, error) {
	page, limit = clampPage(page, limit)
	return s.repo.ListRedemptions(ctx, memberID, limit, (page-1)*limit)
}

// ListRedemptions returns redemption requests across all members, for the
// admin console.
func (s *Service) ListRedemptions(ctx context.Context, status Status, page, limit int) ([]Redemption, error) {
	page, limit = clampPage(page, limit)
	return s.repo.ListAllRedemptions(ctx, status, limit, (page-1)*limit)
}

// Transition applies an administrative status change. The ledger is never
// touched here; points stay spent even on cancellation.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, to Status, trackingNumber string) (*Redemption, error) {
	red, err := s.repo.GetRedemption(ctx, id)
	if err != nil {
		return nil, err
	}

	valid := false
	for _, next := range allowedTransitions[red.Status] {
		if next == to {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateRedemptionStatus(ctx, id, red.Status, to, trackingNumber); err != nil {
		return nil, err
	}
	return s.repo.GetRedemption(ctx, id)
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
