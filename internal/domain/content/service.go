package content

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/agripoint/loyalty-api/internal/domain/ledger"
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

// List returns published items the member is eligible for, annotated with
// the member's completion state.
func (s *Service) List(ctx context.Context, memberID uuid.UUID, kind Kind) ([]ItemView, error) {
	aud, err := s.audience(ctx, memberID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListPublished(ctx, kind)
	if err != nil {
		return nil, err
	}
	progress, err := s.repo.ListProgress(ctx, memberID)
	if err != nil {
		return nil, err
	}
	completed := make(map[uuid.UUID]bool, len(progress))
	for _, p := range progress {
		if p.IsCompleted {
			completed[p.ContentID] = true
		}
	}

	views := []ItemView{}
	for i := range items {
		if !items[i].Targeting.Matches(aud) {
			continue
		}
		views = append(views, toItemView(&items[i], completed[items[i].ID]))
	}
	return views, nil
}

// Get returns one published, eligible item with its full body and quiz or
// survey questions (correct answers stripped).
func (s *Service) Get(ctx context.Context, memberID, contentID uuid.UUID) (*ItemDetail, error) {
	item, err := s.repo.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if !item.IsPublished {
		return nil, ErrNotPublished
	}

	aud, err := s.audience(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !item.Targeting.Matches(aud) {
		return nil, ErrIneligible
	}

	progress, err := s.repo.GetProgress(ctx, memberID, contentID)
	if err != nil {
		return nil, err
	}
	return toItemDetail(item, progress), nil
}

// Complete marks the item finished for the member and pays the award,
// re-checking publication, eligibility and approval server-side. Repeat
// completion returns the original record with no new award.
func (s *Service) Complete(ctx context.Context, memberID, contentID uuid.UUID, req CompleteRequest) (*Progress, error) {
	item, err := s.repo.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if !item.IsPublished {
		return nil, ErrNotPublished
	}

	m, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !m.IsApproved() {
		return nil, member.ErrNotApproved
	}
	subType, err := s.memberRepo.ResolveSubType(ctx, memberID, m.MemberType)
	if err != nil {
		return nil, err
	}
	if !item.Targeting.Matches(targeting.Audience{Tier: m.Tier, MemberType: m.MemberType, SubType: subType}) {
		return nil, ErrIneligible
	}

	points, coins := item.PointsAward, item.CoinsAward
	source := ledger.SourceContent
	var quizScore *int64
	var responses Responses

	switch item.Kind {
	case KindArticle, KindVideo:
		if req.ProgressPct < item.MinProgressPct {
			return nil, fmt.Errorf("%w: progress %d%% below required %d%%", ErrValidationFailed, req.ProgressPct, item.MinProgressPct)
		}
	case KindQuiz:
		if req.Answers == nil {
			return nil, fmt.Errorf("%w: quiz answers required", ErrValidationFailed)
		}
		score := ScoreQuiz(item.Quiz, req.Answers)
		quizScore = &score
		points = score
		source = ledger.SourceQuiz
	case KindSurvey:
		if err := ValidateSurvey(item.Survey, req.Responses); err != nil {
			return nil, err
		}
		responses = req.Responses
		source = ledger.SourceSurvey
	}

	p, awarded, err := s.repo.Complete(ctx, memberID, contentID, source, points, coins, quizScore, responses)
	if err != nil {
		return nil, err
	}
	if awarded {
		log.Info().
			Str("member_id", memberID.String()).
			Str("content_id", contentID.String()).
			Str("kind", string(item.Kind)).
			Int64("points", points).
			Int64("coins", coins).
			Msg("content completed")
	}
	return p, nil
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
