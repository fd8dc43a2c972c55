package service

import (
	"context"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/repository"
)

type referenceService struct {
	refRepo repository.ReferenceRepository
}

func NewReferenceService(refRepo repository.ReferenceRepository) ReferenceService {
	return &referenceService{refRepo: refRepo}
}

func (s *referenceService) VehicleCategories(ctx context.Context) ([]domain.VehicleCategory, error) {
	return s.refRepo.ListVehicleCategories(ctx)
}

func (s *referenceService) Locations(ctx context.Context) ([]domain.Location, error) {
	return s.refRepo.ListLocations(ctx)
}

func (s *referenceService) Organs(ctx context.Context) ([]domain.Organ, error) {
	return s.refRepo.ListOrgans(ctx)
}

func (s *referenceService) ApplicationTypes(ctx context.Context) ([]domain.ApplicationTypeRef, error) {
	return s.refRepo.ListApplicationTypes(ctx)
}

func (s *referenceService) ApplicationStatuses(ctx context.Context) ([]domain.ApplicationStatusRef, error) {
	return s.refRepo.ListApplicationStatuses(ctx)
}

func (s *referenceService) ConditionTypes(ctx context.Context) ([]domain.LicenseConditionType, error) {
	return s.refRepo.ListConditionTypes(ctx)
}
