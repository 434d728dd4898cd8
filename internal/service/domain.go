package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/watchair/watchair/internal/store"
	"github.com/watchair/watchair/internal/store/model"
	"github.com/watchair/watchair/pkg/log"
)

type DomainCreateForm struct {
	Name    string
	EndDate *time.Time
}

func (f DomainCreateForm) ToDomain() model.Domain {
	return model.Domain{
		Name:    strings.TrimSpace(f.Name),
		EndDate: f.EndDate,
	}
}

type DomainService struct {
	store  store.Store
	logger *log.StructuredLogger
}

func NewDomainService(s store.Store) *DomainService {
	return &DomainService{
		store:  s,
		logger: log.NewDebugLogger("domain_service"),
	}
}

func (s *DomainService) CreateDomain(ctx context.Context, form DomainCreateForm) (*model.Domain, error) {
	tracer := s.logger.WithContext(ctx).Operation("create_domain").WithString("name", form.Name).Build()

	domain, err := s.store.Domain().Create(ctx, form.ToDomain())
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	tracer.Success().WithString("domain_id", domain.ID.String()).Log()
	return domain, nil
}

func (s *DomainService) ListDomains(ctx context.Context) (model.DomainList, error) {
	return s.store.Domain().List(ctx)
}

func (s *DomainService) GetDomain(ctx context.Context, id uuid.UUID) (*model.Domain, error) {
	domain, err := s.store.Domain().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrDomainNotFound(id)
		}
		return nil, err
	}
	return domain, nil
}
