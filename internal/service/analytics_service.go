package service

import (
	"context"
	"eventhub_backend/internal/repository"
)

type AnalyticsService struct {
	AnalyticsRepo *repository.AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo *repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{AnalyticsRepo: analyticsRepo}
}

func (s *AnalyticsService) HostAnalytics(ctx context.Context, hostID string) (*repository.HostStats, error) {
	return s.AnalyticsRepo.HostStats(ctx, hostID)
}
