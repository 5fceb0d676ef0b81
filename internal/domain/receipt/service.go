package receipt

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/agripoint/loyalty-api/internal/domain/member"
	"github.com/agripoint/loyalty-api/internal/pkg/imaging"
	"github.com/agripoint/loyalty-api/internal/pkg/storage"
)

type Service struct {
	repo       *Repository
	memberRepo *member.Repository
	store      storage.Storage
	processor  *imaging.Processor
}

func NewService(repo *Repository, memberRepo *member.Repository, store storage.Storage, processor *imaging.Processor) *Service {
	return &Service{repo: repo, memberRepo: memberRepo, store: store, processor: processor}
}

// Submit normalizes the uploaded photo, stores it and records a pending
// receipt. Points are only awarded later, when an admin approves.
func (s *Service) Submit(ctx context.Context, memberID uuid.UUID, storeName string, amount int64, image io.Reader) (*Receipt, error) {
	m, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !m.IsApproved() {
		return nil, member.ErrNotApproved
	}

	processed, err := s.processor.Process(image)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImage, err)
	}

	id := uuid.New()
	key := fmt.Sprintf("receipts/%s/%s.jpg", memberID, id)
	if err := s.store.Put(ctx, key, bytes.NewReader(processed.Data), processed.ContentType); err != nil {
		return nil, fmt.Errorf("store receipt image: %w", err)
	}

	rec := &Receipt{
		ID:        id,
		ProfileID: memberID,
		ImageKey:  key,
		StoreName: storeName,
		Amount:    amount,
		Status:    StatusPending,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		// Best effort: do not orphan the stored image.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("failed to delete orphaned receipt image")
		}
		return nil, err
	}

	log.Info().
		Str("member_id", memberID.String()).
		Str("receipt_id", id.String()).
		Msg("receipt submitted")
	return rec, nil
}

// MyReceipts returns a page of the member's receipts with image URLs.
func (s *Service) MyReceipts(ctx context.Context, memberID uuid.UUID, page, limit int) ([]ReceiptView, error) {
	page, limit = clampPage(page, limit)
	recs, err := s.repo.ListByMember(ctx, memberID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return s.toViews(recs), nil
}

// ReviewQueue returns pending receipts for the admin console, oldest first.
func (s *Service) ReviewQueue(ctx context.Context, page, limit int) ([]ReceiptView, error) {
	page, limit = clampPage(page, limit)
	recs, err := s.repo.ListByStatus(ctx, StatusPending, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return s.toViews(recs), nil
}

// Approve awards the points and closes the receipt. Double review is
// rejected by the guarded status transition.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, points int64, notes string) (*Receipt, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Approve(ctx, id, rec.ProfileID, points, notes); err != nil {
		return nil, err
	}
	log.Info().
		Str("receipt_id", id.String()).
		Str("member_id", rec.ProfileID.String()).
		Int64("points", points).
		Msg("receipt approved")
	return s.repo.GetByID(ctx, id)
}

// Reject closes the receipt without any award.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, notes string) (*Receipt, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.Reject(ctx, id, notes); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) toViews(recs []Receipt) []ReceiptView {
	views := make([]ReceiptView, 0, len(recs))
	for i := range recs {
		views = append(views, toReceiptView(&recs[i], s.store.GetURL(recs[i].ImageKey)))
	}
	return views
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
