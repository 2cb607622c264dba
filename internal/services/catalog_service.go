package services

import (
	"context"

	"passport-backend/internal/models"
	"passport-backend/internal/repositories"
)

// CatalogService manages the services catalog (услуги)
type CatalogService struct {
	Repo *repositories.ServiceRepository
}

func NewCatalogService(repo *repositories.ServiceRepository) *CatalogService {
	return &CatalogService{Repo: repo}
}

func validateServiceInput(name, serviceType string, baseCost float64) error {
	if name == "" {
		return validationf("name is required")
	}
	if baseCost < 0 {
		return validationf("base_cost must not be negative")
	}
	if serviceType != models.ServiceTypeSubscription && serviceType != models.ServiceTypeOneTime {
		return validationf("type must be %q or %q", models.ServiceTypeSubscription, models.ServiceTypeOneTime)
	}
	return nil
}

func (s *CatalogService) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.Service, error) {
	if req.Type == "" {
		req.Type = models.ServiceTypeSubscription
	}
	if err := validateServiceInput(req.Name, req.Type, req.BaseCost); err != nil {
		return nil, err
	}
	duration := req.DurationDays
	if req.Type == models.ServiceTypeSubscription && duration == nil {
		d := 30
		duration = &d
	}

	service := &models.Service{
		Name:         req.Name,
		BaseCost:     req.BaseCost,
		Type:         req.Type,
		DurationDays: duration,
	}
	if err := s.Repo.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *CatalogService) GetService(ctx context.Context, id int) (*models.Service, error) {
	return s.Repo.Get(ctx, id)
}

func (s *CatalogService) ListServices(ctx context.Context) ([]*models.Service, error) {
	return s.Repo.List(ctx)
}

func (s *CatalogService) UpdateService(ctx context.Context, id int, req *models.UpdateServiceRequest) (*models.Service, error) {
	if err := validateServiceInput(req.Name, req.Type, req.BaseCost); err != nil {
		return nil, err
	}

	service := &models.Service{
		ID:           id,
		Name:         req.Name,
		BaseCost:     req.BaseCost,
		Type:         req.Type,
		DurationDays: req.DurationDays,
	}
	if err := s.Repo.Update(ctx, service); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *CatalogService) DeleteService(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
