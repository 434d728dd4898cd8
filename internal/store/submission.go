package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/watchair/watchair/internal/store/model"
	"gorm.io/gorm"
)

type Submission interface {
	Create(ctx context.Context, submissions []model.Submission) error
	CreateAuthorships(ctx context.Context, authorships []model.SubmissionAuthorship) error
	List(ctx context.Context, domainID uuid.UUID) ([]model.Submission, error)
	ListAuthorships(ctx context.Context, domainID uuid.UUID) ([]model.SubmissionAuthorship, error)
}

type SubmissionStore struct {
	db *gorm.DB
}

// Make sure we conform to Submission interface
var _ Submission = (*SubmissionStore)(nil)

func NewSubmissionStore(db *gorm.DB) Submission {
	return &SubmissionStore{db: db}
}

func (s *SubmissionStore) Create(ctx context.Context, submissions []model.Submission) error {
	return bulkCreate(ctx, s.db, submissions)
}

func (s *SubmissionStore) CreateAuthorships(ctx context.Context, authorships []model.SubmissionAuthorship) error {
	for i := range authorships {
		if authorships[i].ID == uuid.Nil {
			authorships[i].ID = uuid.New()
		}
	}
	return bulkCreate(ctx, s.db, authorships)
}

func (s *SubmissionStore) List(ctx context.Context, domainID uuid.UUID) ([]model.Submission, error) {
	return listByDomain[model.Submission](ctx, s.db, domainID)
}

func (s *SubmissionStore) ListAuthorships(ctx context.Context, domainID uuid.UUID) ([]model.SubmissionAuthorship, error) {
	var authorships []model.SubmissionAuthorship
	if err := getDB(ctx, s.db).WithContext(ctx).Where("domain_id = ?", domainID).Order("submission_id, author_id").Find(&authorships).Error; err != nil {
		return nil, err
	}
	return authorships, nil
}

type Assignment interface {
	Create(ctx context.Context, assignments []model.Assignment) error
	List(ctx context.Context, domainID uuid.UUID) ([]model.Assignment, error)
}

type AssignmentStore struct {
	db *gorm.DB
}

// Make sure we conform to Assignment interface
var _ Assignment = (*AssignmentStore)(nil)

func NewAssignmentStore(db *gorm.DB) Assignment {
	return &AssignmentStore{db: db}
}

func (s *AssignmentStore) Create(ctx context.Context, assignments []model.Assignment) error {
	for i := range assignments {
		if assignments[i].ID == uuid.Nil {
			assignments[i].ID = uuid.New()
		}
	}
	return bulkCreate(ctx, s.db, assignments)
}

func (s *AssignmentStore) List(ctx context.Context, domainID uuid.UUID) ([]model.Assignment, error) {
	var assignments []model.Assignment
	if err := getDB(ctx, s.db).WithContext(ctx).Where("domain_id = ?", domainID).Order("member_id, submission_id").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}
