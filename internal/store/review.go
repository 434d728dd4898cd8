package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/watchair/watchair/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Review interface {
	Create(ctx context.Context, reviews []model.Review) error
	List(ctx context.Context, domainID uuid.UUID) ([]model.Review, error)
}

type ReviewStore struct {
	db *gorm.DB
}

// Make sure we conform to Review interface
var _ Review = (*ReviewStore)(nil)

func NewReviewStore(db *gorm.DB) Review {
	return &ReviewStore{db: db}
}

func (s *ReviewStore) Create(ctx context.Context, reviews []model.Review) error {
	return bulkCreate(ctx, s.db, reviews)
}

func (s *ReviewStore) List(ctx context.Context, domainID uuid.UUID) ([]model.Review, error) {
	return listByDomain[model.Review](ctx, s.db, domainID)
}

// Score holds the global review score and confidence lookup tables.
type Score interface {
	EnsureReviewScores(ctx context.Context, scores []model.ReviewScore) error
	EnsureConfidences(ctx context.Context, confidences []model.Confidence) error
	ListReviewScores(ctx context.Context) ([]model.ReviewScore, error)
	ListConfidences(ctx context.Context) ([]model.Confidence, error)
}

type ScoreStore struct {
	db *gorm.DB
}

// Make sure we conform to Score interface
var _ Score = (*ScoreStore)(nil)

func NewScoreStore(db *gorm.DB) Score {
	return &ScoreStore{db: db}
}

// EnsureReviewScores inserts the scores whose value is not known yet. Concurrent
// ingestions of the same sheet resolve through the primary key.
func (s *ScoreStore) EnsureReviewScores(ctx context.Context, scores []model.ReviewScore) error {
	return insertIfAbsent(ctx, s.db, scores)
}

func (s *ScoreStore) EnsureConfidences(ctx context.Context, confidences []model.Confidence) error {
	return insertIfAbsent(ctx, s.db, confidences)
}

func (s *ScoreStore) ListReviewScores(ctx context.Context) ([]model.ReviewScore, error) {
	var scores []model.ReviewScore
	if err := getDB(ctx, s.db).WithContext(ctx).Order("value").Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *ScoreStore) ListConfidences(ctx context.Context) ([]model.Confidence, error) {
	var confidences []model.Confidence
	if err := getDB(ctx, s.db).WithContext(ctx).Order("value").Find(&confidences).Error; err != nil {
		return nil, err
	}
	return confidences, nil
}

func insertIfAbsent[T any](ctx context.Context, db *gorm.DB, records []T) error {
	if len(records) == 0 {
		return nil
	}
	return translateError(getDB(ctx, db).WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&records, batchSize).Error)
}

type Comment interface {
	Create(ctx context.Context, comments []model.Comment) error
	List(ctx context.Context, domainID uuid.UUID) ([]model.Comment, error)
}

type CommentStore struct {
	db *gorm.DB
}

// Make sure we conform to Comment interface
var _ Comment = (*CommentStore)(nil)

func NewCommentStore(db *gorm.DB) Comment {
	return &CommentStore{db: db}
}

func (s *CommentStore) Create(ctx context.Context, comments []model.Comment) error {
	return bulkCreate(ctx, s.db, comments)
}

func (s *CommentStore) List(ctx context.Context, domainID uuid.UUID) ([]model.Comment, error) {
	return listByDomain[model.Comment](ctx, s.db, domainID)
}
