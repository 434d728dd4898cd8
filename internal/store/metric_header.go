package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/watchair/watchair/internal/store/model"
	"gorm.io/gorm"
)

type Metric interface {
	// Replace stores headers after dropping the domain headers whose title is listed in
	// titles or shared with one of the new headers.
	Replace(ctx context.Context, domainID uuid.UUID, titles []string, headers []model.MetricHeader) error
	List(ctx context.Context, domainID uuid.UUID) (model.MetricHeaderList, error)
}

type MetricStore struct {
	db *gorm.DB
}

// Make sure we conform to Metric interface
var _ Metric = (*MetricStore)(nil)

func NewMetricStore(db *gorm.DB) Metric {
	return &MetricStore{db: db}
}

func (s *MetricStore) Replace(ctx context.Context, domainID uuid.UUID, titles []string, headers []model.MetricHeader) error {
	titles = append([]string{}, titles...)
	for i := range headers {
		headers[i].DomainID = domainID
		if headers[i].ID == uuid.Nil {
			headers[i].ID = uuid.New()
		}
		for j := range headers[i].Values {
			if headers[i].Values[j].ID == uuid.Nil {
				headers[i].Values[j].ID = uuid.New()
			}
			headers[i].Values[j].HeaderID = headers[i].ID
			headers[i].Values[j].Position = j
		}
		titles = append(titles, headers[i].Title)
	}

	return getDB(ctx, s.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(titles) > 0 {
			if err := tx.Where("domain_id = ? AND title IN ?", domainID, titles).Delete(&model.MetricHeader{}).Error; err != nil {
				return err
			}
		}
		if len(headers) == 0 {
			return nil
		}
		return translateError(tx.Create(&headers).Error)
	})
}

func (s *MetricStore) List(ctx context.Context, domainID uuid.UUID) (model.MetricHeaderList, error) {
	var headers model.MetricHeaderList
	err := getDB(ctx, s.db).WithContext(ctx).
		Preload("Values", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("domain_id = ?", domainID).
		Order("created_at, title").
		Find(&headers).Error
	if err != nil {
		return nil, err
	}
	return headers, nil
}
