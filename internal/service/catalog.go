package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"homeserve/internal/apperr"
	"homeserve/internal/core/cache"
	"homeserve/internal/domain"
	"homeserve/internal/notify"
	"homeserve/pkg/utils"
)

type CreateServiceInput struct {
	Title       string  `json:"title" binding:"required,max=191"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required,max=64"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	PriceUnit   string  `json:"priceUnit" binding:"omitempty,max=32"`
}

type CatalogService struct {
	services domain.ServiceRepository
	cache    *cache.Cache
	ttl      time.Duration
	notifier Notifier
	log      *zap.Logger
}

func NewCatalogService(services domain.ServiceRepository, c *cache.Cache, ttl time.Duration, n Notifier, log *zap.Logger) *CatalogService {
	return &CatalogService{services: services, cache: c, ttl: ttl, notifier: n, log: log}
}

func serviceCacheKey(id string) string { return "svc:detail:" + id }

func (s *CatalogService) Search(f domain.ServiceSearch) ([]domain.ServiceSummary, int64, error) {
	rows, total, err := s.services.Search(f)
	if err != nil {
		return nil, 0, apperr.Internal("search services", err)
	}
	return rows, total, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.ServiceDetail, error) {
	load := func(context.Context) (*domain.ServiceDetail, error) {
		d, err := s.services.Detail(id)
		if err != nil {
			return nil, apperr.Internal("load service", err)
		}
		if d == nil {
			return nil, apperr.NotFound("service not found")
		}
		return d, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON(s.cache, ctx, serviceCacheKey(id), s.ttl, load)
}

func (s *CatalogService) Create(c Caller, in CreateServiceInput) (*domain.Service, error) {
	if err := requireRole(c, domain.RoleProvider, "only providers can create services"); err != nil {
		return nil, err
	}
	svc := &domain.Service{
		ID:          utils.NewID(),
		ProviderID:  c.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price,
		PriceUnit:   in.PriceUnit,
		IsActive:    true,
	}
	if err := s.services.Create(svc); err != nil {
		return nil, apperr.Internal("create service", err)
	}
	s.log.Info("service created", zap.String("service_id", svc.ID), zap.String("provider_id", c.ID))
	if s.notifier != nil {
		s.notifier.NotifyHomeowners(notify.Notification{
			Type:    notify.TypeNewService,
			Message: svc.Title + " is now available",
			Data:    map[string]any{"serviceId": svc.ID, "category": svc.Category},
		})
	}
	return svc, nil
}

func (s *CatalogService) Update(ctx context.Context, c Caller, id string, patch domain.ServicePatch) (*domain.Service, error) {
	if err := requireRole(c, domain.RoleProvider, "only providers can update services"); err != nil {
		return nil, err
	}
	svc, err := s.services.FindByID(id)
	if err != nil {
		return nil, apperr.Internal("load service", err)
	}
	if svc == nil {
		return nil, apperr.NotFound("service not found")
	}
	if err := requireOwner(svc.ProviderID, c, "not authorized to update this service"); err != nil {
		return nil, err
	}
	patch.Apply(svc)
	if err := s.services.Update(svc); err != nil {
		return nil, apperr.Internal("update service", err)
	}
	s.invalidate(ctx, id)
	return svc, nil
}

func (s *CatalogService) Delete(ctx context.Context, c Caller, id string) error {
	if err := requireRole(c, domain.RoleProvider, "only providers can delete services"); err != nil {
		return err
	}
	svc, err := s.services.FindByID(id)
	if err != nil {
		return apperr.Internal("load service", err)
	}
	if svc == nil {
		return apperr.NotFound("service not found")
	}
	if err := requireOwner(svc.ProviderID, c, "not authorized to delete this service"); err != nil {
		return err
	}
	if err := s.services.SoftDelete(id); err != nil {
		return apperr.Internal("delete service", err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, serviceCacheKey(id))
	}
}
