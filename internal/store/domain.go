package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/watchair/watchair/internal/store/model"
	"gorm.io/gorm"
)

type Domain interface {
	Create(ctx context.Context, domain model.Domain) (*model.Domain, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Domain, error)
	List(ctx context.Context) (model.DomainList, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DomainStore struct {
	db *gorm.DB
}

// Make sure we conform to Domain interface
var _ Domain = (*DomainStore)(nil)

func NewDomainStore(db *gorm.DB) Domain {
	return &DomainStore{db: db}
}

func (d *DomainStore) Create(ctx context.Context, domain model.Domain) (*model.Domain, error) {
	if domain.ID == uuid.Nil {
		domain.ID = uuid.New()
	}
	if err := getDB(ctx, d.db).WithContext(ctx).Create(&domain).Error; err != nil {
		return nil, translateError(err)
	}
	return &domain, nil
}

func (d *DomainStore) Get(ctx context.Context, id uuid.UUID) (*model.Domain, error) {
	var domain model.Domain
	if err := getDB(ctx, d.db).WithContext(ctx).First(&domain, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &domain, nil
}

func (d *DomainStore) List(ctx context.Context) (model.DomainList, error) {
	var domains model.DomainList
	if err := getDB(ctx, d.db).WithContext(ctx).Order("created_at").Find(&domains).Error; err != nil {
		return nil, err
	}
	return domains, nil
}

// Delete removes the domain and, through the foreign keys, everything scoped to it.
func (d *DomainStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := getDB(ctx, d.db).WithContext(ctx).Delete(&model.Domain{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
