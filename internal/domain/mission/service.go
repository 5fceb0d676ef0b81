package mission

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/agripoint/loyalty-api/internal/domain/member"
	"github.com/agripoint/loyalty-api/internal/domain/targeting"
)

type Service struct {
	repo       *Repository
	memberRepo *member.Repository
}

func NewService(repo *Repository, memberRepo *member.Repository) *Service {
	return &Service{repo: repo, memberRepo: memberRepo}
}

// List returns active missions the member is eligible for, with the award
// resolved for that member and the completion state annotated.
func (s *Service) List(ctx context.Context, memberID uuid.UUID) ([]MissionView, error) {
	aud, err := s.audience(ctx, memberID)
	if err != nil {
		return nil, err
	}

	missions, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	completions, err := s.repo.ListCompletions(ctx, memberID)
	if err != nil {
		return nil, err
	}
	done := make(map[uuid.UUID]bool, len(completions))
	for _, c := range completions {
		if c.IsCompleted {
			done[c.MissionID] = true
		}
	}

	views := []MissionView{}
	for i := range missions {
		if !missions[i].Targeting.Matches(aud) {
			continue
		}
		views = append(views, toMissionView(&missions[i], ResolveAward(&missions[i], aud), done[missions[i].ID]))
	}
	return views, nil
}

// Complete validates the proof, resolves the member's award and records
// the completion. A repeat completion returns the original record with no
// new award.
func (s *Service) Complete(ctx context.Context, memberID, missionID uuid.UUID, proof string) (*Completion, error) {
	m, err := s.repo.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if !m.IsActive {
		return nil, ErrNotActive
	}

	mem, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !mem.IsApproved() {
		return nil, member.ErrNotApproved
	}
	subType, err := s.memberRepo.ResolveSubType(ctx, memberID, mem.MemberType)
	if err != nil {
		return nil, err
	}
	aud := targeting.Audience{Tier: mem.Tier, MemberType: mem.MemberType, SubType: subType}
	if !m.Targeting.Matches(aud) {
		return nil, ErrIneligible
	}

	if m.ProofKind == ProofQR {
		if m.QRCode == nil || proof == "" || proof != *m.QRCode {
			return nil, ErrInvalidProof
		}
	}

	award := ResolveAward(m, aud)
	c, awarded, err := s.repo.Complete(ctx, memberID, missionID, award, proof)
	if err != nil {
		return nil, err
	}
	if awarded {
		log.Info().
			Str("member_id", memberID.String()).
			Str("mission_id", missionID.String()).
			Int64("points", award.Points).
			Int64("coins", award.Coins).
			Msg("mission completed")
	}
	return c, nil
}

func (s *Service) audience(ctx context.Context, memberID uuid.UUID) (targeting.Audience, error) {
	m, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return targeting.Audience{}, err
	}
	subType, err := s.memberRepo.ResolveSubType(ctx, memberID, m.MemberType)
	if err != nil {
		return targeting.Audience{}, err
	}
	return targeting.Audience{Tier: m.Tier, MemberType: m.MemberType, SubType: subType}, nil
}
