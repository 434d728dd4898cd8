package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/watchair/watchair/internal/store/model"
	"gorm.io/gorm"
)

const batchSize = 500

type Person interface {
	Create(ctx context.Context, persons []model.Person) error
	List(ctx context.Context, domainID uuid.UUID) ([]model.Person, error)
}

type PersonStore struct {
	db *gorm.DB
}

// Make sure we conform to Person interface
var _ Person = (*PersonStore)(nil)

func NewPersonStore(db *gorm.DB) Person {
	return &PersonStore{db: db}
}

func (s *PersonStore) Create(ctx context.Context, persons []model.Person) error {
	return bulkCreate(ctx, s.db, persons)
}

func (s *PersonStore) List(ctx context.Context, domainID uuid.UUID) ([]model.Person, error) {
	return listByDomain[model.Person](ctx, s.db, domainID)
}

type Member interface {
	Create(ctx context.Context, members []model.CommitteeMember) error
	List(ctx context.Context, filter *MemberQueryFilter) ([]model.CommitteeMember, error)
}

type MemberStore struct {
	db *gorm.DB
}

// Make sure we conform to Member interface
var _ Member = (*MemberStore)(nil)

func NewMemberStore(db *gorm.DB) Member {
	return &MemberStore{db: db}
}

func (s *MemberStore) Create(ctx context.Context, members []model.CommitteeMember) error {
	return bulkCreate(ctx, s.db, members)
}

func (s *MemberStore) List(ctx context.Context, filter *MemberQueryFilter) ([]model.CommitteeMember, error) {
	var members []model.CommitteeMember
	tx := getDB(ctx, s.db).WithContext(ctx).Order("id")
	if filter != nil {
		tx = apply(tx, filter.QueryFn)
	}
	if err := tx.Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

type Author interface {
	Create(ctx context.Context, authors []model.Author) error
	List(ctx context.Context, domainID uuid.UUID) ([]model.Author, error)
}

type AuthorStore struct {
	db *gorm.DB
}

// Make sure we conform to Author interface
var _ Author = (*AuthorStore)(nil)

func NewAuthorStore(db *gorm.DB) Author {
	return &AuthorStore{db: db}
}

func (s *AuthorStore) Create(ctx context.Context, authors []model.Author) error {
	return bulkCreate(ctx, s.db, authors)
}

func (s *AuthorStore) List(ctx context.Context, domainID uuid.UUID) ([]model.Author, error) {
	var authors []model.Author
	if err := getDB(ctx, s.db).WithContext(ctx).Where("domain_id = ?", domainID).Order("person_id").Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

func bulkCreate[T any](ctx context.Context, db *gorm.DB, records []T) error {
	if len(records) == 0 {
		return nil
	}
	return translateError(getDB(ctx, db).WithContext(ctx).CreateInBatches(&records, batchSize).Error)
}

func listByDomain[T any](ctx context.Context, db *gorm.DB, domainID uuid.UUID) ([]T, error) {
	var records []T
	if err := getDB(ctx, db).WithContext(ctx).Where("domain_id = ?", domainID).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
