package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Award credits points or coins to a member and records the earn.
func (s *Service) Award(ctx context.Context, memberID uuid.UUID, currency Currency, amount int64, meta TxMeta) error {
	if err := s.repo.Add(ctx, memberID, currency, amount, meta); err != nil {
		return err
	}
	log.Info().
		Str("member_id", memberID.String()).
		Str("currency", string(currency)).
		Int64("amount", amount).
		Str("source", meta.Source).
		Msg("ledger award")
	return nil
}

// Spend debits points or coins from a member and records the spend.
func (s *Service) Spend(ctx context.Context, memberID uuid.UUID, currency Currency, amount int64, meta TxMeta) error {
	if err := s.repo.Deduct(ctx, memberID, currency, amount, meta); err != nil {
		return err
	}
	log.Info().
		Str("member_id", memberID.String()).
		Str("currency", string(currency)).
		Int64("amount", amount).
		Str("source", meta.Source).
		Msg("ledger spend")
	return nil
}

// AwardRegistrationBonus grants the signup bonus as a points earn.
func (s *Service) AwardRegistrationBonus(ctx context.Context, memberID uuid.UUID, amount int64) error {
	return s.Award(ctx, memberID, CurrencyPoints, amount, TxMeta{
		Source:      SourceRegistration,
		Description: "registration bonus",
	})
}

// History returns a page of one currency's transactions plus the total count.
func (s *Service) History(ctx context.Context, memberID uuid.UUID, currency Currency, page, perPage int) ([]Transaction, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	txs, err := s.repo.List(ctx, memberID, currency, perPage, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, memberID, currency)
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}
