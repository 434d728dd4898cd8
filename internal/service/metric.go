package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/watchair/watchair/internal/store"
	"github.com/watchair/watchair/internal/store/model"
)

type MetricService struct {
	store store.Store
}

func NewMetricService(s store.Store) *MetricService {
	return &MetricService{store: s}
}

// ListMetrics returns the headers of the domain with their values in order.
func (s *MetricService) ListMetrics(ctx context.Context, domainID uuid.UUID) (model.MetricHeaderList, error) {
	if _, err := s.store.Domain().Get(ctx, domainID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrDomainNotFound(domainID)
		}
		return nil, err
	}
	return s.store.Metric().List(ctx, domainID)
}

// ListReviewScores returns the review score lookup table, lowest value first.
func (s *MetricService) ListReviewScores(ctx context.Context) ([]model.ReviewScore, error) {
	return s.store.Score().ListReviewScores(ctx)
}

func (s *MetricService) ListConfidences(ctx context.Context) ([]model.Confidence, error) {
	return s.store.Score().ListConfidences(ctx)
}
