package stats

import (
	"context"
	"time"

	"github.com/neupane-rajan/airline-reservation/internal/repository"
	"go.uber.org/zap"
)

type StatsUseCase interface {
	Dashboard(ctx context.Context) (*repository.DashboardStats, error)
	MonthlyRevenue(ctx context.Context, year int) ([]repository.MonthlyRevenue, error)
	PopularRoutes(ctx context.Context, limit int) ([]repository.RouteStats, error)
}

type StatsService struct {
	repo   repository.StatsRepository
	logger *zap.Logger
}

func NewStatsService(repo repository.StatsRepository, logger *zap.Logger) *StatsService {
	return &StatsService{repo: repo, logger: logger}
}

func (s *StatsService) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	dashboard, err := s.repo.Dashboard(ctx)
	if err != nil {
		s.logger.Error("dashboard stats failed", zap.Error(err))
		return nil, err
	}
	return dashboard, nil
}

func (s *StatsService) MonthlyRevenue(ctx context.Context, year int) ([]repository.MonthlyRevenue, error) {
	if year <= 0 {
		year = time.Now().Year()
	}
	return s.repo.MonthlyRevenue(ctx, year)
}

func (s *StatsService) PopularRoutes(ctx context.Context, limit int) ([]repository.RouteStats, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	return s.repo.PopularRoutes(ctx, limit)
}

var _ StatsUseCase = (*StatsService)(nil)
