package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
)

// TopItemResult represents a menu item's sales performance
type TopItemResult struct {
	ItemID   uuid.UUID
	ItemName string
	Category string
	Sold     int
	Revenue  float64
}

// RoomOccupancyResult represents a room's booking performance
type RoomOccupancyResult struct {
	RoomID   uuid.UUID
	Number   string
	RoomType string
	Booked   int
	Revenue  float64
}

// DailyRevenueResult represents revenue recognised on a single day
type DailyRevenueResult struct {
	Date      time.Time
	Revenue   float64
	Collected float64
}

// TypeBreakdownResult represents totals aggregated per transaction type
type TypeBreakdownResult struct {
	Type    enum.TransactionType
	Count   int64
	Revenue float64
}

// AnalyticsRepository defines interface for dashboard aggregation queries
type AnalyticsRepository interface {
	// GetTopItems returns top selling menu items by revenue
	GetTopItems(ctx context.Context, limit int) ([]TopItemResult, error)

	// GetRoomOccupancy returns rooms ranked by booked count
	GetRoomOccupancy(ctx context.Context, limit int) ([]RoomOccupancyResult, error)

	// GetDailyRevenue returns issued revenue and collected cash per day for the last N days
	GetDailyRevenue(ctx context.Context, days int) ([]DailyRevenueResult, error)

	// GetTypeBreakdown returns counts and revenue per transaction type in a window
	GetTypeBreakdown(ctx context.Context, start, end time.Time) ([]TypeBreakdownResult, error)

	// GetOutstandingBalance returns the sum of unpaid balances on folios
	GetOutstandingBalance(ctx context.Context) (float64, error)

	// GetTotalRevenue returns total issued revenue, proformas excluded
	GetTotalRevenue(ctx context.Context) (float64, error)

	// GetCollectedToday returns payment records summed for the current day
	GetCollectedToday(ctx context.Context) (float64, error)
}
