package checkin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/agripoint/loyalty-api/internal/domain/member"
)

type Service struct {
	repo       *Repository
	memberRepo *member.Repository
	now        func() time.Time
}

func NewService(repo *Repository, memberRepo *member.Repository) *Service {
	return &Service{repo: repo, memberRepo: memberRepo, now: time.Now}
}

// StatusResponse is the member's check-in state for today.
type StatusResponse struct {
	CheckedInToday bool        `json:"checked_in_today"`
	StreakDay      int         `json:"streak_day"`
	Today          *Checkin    `json:"today,omitempty"`
	Schedule       []RewardDay `json:"schedule"`
}

// Status reports whether the member checked in today, the current streak
// and the reward cycle.
func (s *Service) Status(ctx context.Context, memberID uuid.UUID) (*StatusResponse, error) {
	schedule, err := s.repo.Schedule(ctx)
	if err != nil {
		return nil, err
	}

	today, err := s.repo.Get(ctx, memberID, s.now())
	if err != nil {
		return nil, err
	}

	resp := &StatusResponse{Schedule: schedule}
	if today != nil {
		resp.CheckedInToday = true
		resp.StreakDay = today.StreakDay
		resp.Today = today
		return resp, nil
	}

	yesterday, err := s.repo.Get(ctx, memberID, s.now().AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	if yesterday != nil {
		resp.StreakDay = yesterday.StreakDay
	}
	return resp, nil
}

// Checkin records today's check-in for the member and pays the streak
// reward. Checking in twice on one day returns the first record unchanged.
func (s *Service) Checkin(ctx context.Context, memberID uuid.UUID) (*Checkin, error) {
	m, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !m.IsApproved() {
		return nil, member.ErrNotApproved
	}

	schedule, err := s.repo.Schedule(ctx)
	if err != nil {
		return nil, err
	}

	c, created, err := s.repo.Create(ctx, memberID, s.now(), schedule)
	if err != nil {
		return nil, err
	}
	if created {
		log.Info().
			Str("member_id", memberID.String()).
			Int("streak_day", c.StreakDay).
			Int64("points", c.PointsEarned).
			Int64("coins", c.CoinsEarned).
			Msg("daily check-in")
	}
	return c, nil
}
