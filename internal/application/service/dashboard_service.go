package service

import (
	"context"
	"time"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
)

// DashboardSummary aggregates the terminal's headline figures
type DashboardSummary struct {
	TotalRevenue       float64                          `json:"total_revenue"`
	CollectedToday     float64                          `json:"collected_today"`
	OutstandingBalance float64                          `json:"outstanding_balance"`
	TopItems           []repository.TopItemResult       `json:"top_items"`
	RoomOccupancy      []repository.RoomOccupancyResult `json:"room_occupancy"`
	DailyRevenue       []repository.DailyRevenueResult  `json:"daily_revenue"`
	TypeBreakdown      []repository.TypeBreakdownResult `json:"type_breakdown"`
	LowStockItems      []entity.MenuItem                `json:"low_stock_items"`
}

// DashboardService aggregates analytics for the back-office dashboard
type DashboardService struct {
	analyticsRepo   repository.AnalyticsRepository
	menuItemService *MenuItemService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository, menuItemService *MenuItemService) *DashboardService {
	return &DashboardService{
		analyticsRepo:   analyticsRepo,
		menuItemService: menuItemService,
	}
}

// GetSummary builds the dashboard summary for the property in context
func (s *DashboardService) GetSummary(ctx context.Context, days int) (*DashboardSummary, error) {
	if days < 1 {
		days = 7
	}
	if days > 90 {
		days = 90
	}

	totalRevenue, err := s.analyticsRepo.GetTotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	collectedToday, err := s.analyticsRepo.GetCollectedToday(ctx)
	if err != nil {
		return nil, err
	}
	outstanding, err := s.analyticsRepo.GetOutstandingBalance(ctx)
	if err != nil {
		return nil, err
	}
	topItems, err := s.analyticsRepo.GetTopItems(ctx, 5)
	if err != nil {
		return nil, err
	}
	occupancy, err := s.analyticsRepo.GetRoomOccupancy(ctx, 5)
	if err != nil {
		return nil, err
	}
	daily, err := s.analyticsRepo.GetDailyRevenue(ctx, days)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	windowStart := now.AddDate(0, 0, -days)
	breakdown, err := s.analyticsRepo.GetTypeBreakdown(ctx, windowStart, now)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.menuItemService.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalRevenue:       totalRevenue,
		CollectedToday:     collectedToday,
		OutstandingBalance: outstanding,
		TopItems:           topItems,
		RoomOccupancy:      occupancy,
		DailyRevenue:       daily,
		TypeBreakdown:      breakdown,
		LowStockItems:      lowStock,
	}, nil
}
