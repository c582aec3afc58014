package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
	domainRepo "github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// propertyOrNil returns the property from context; aggregates over uuid.Nil
// match no rows, mirroring the fail-closed behavior of PropertyScope.
func propertyOrNil(ctx context.Context) uuid.UUID {
	propertyID, ok := GetPropertyID(ctx)
	if !ok {
		return uuid.Nil
	}
	return propertyID
}

func (r *analyticsRepository) GetTopItems(ctx context.Context, limit int) ([]domainRepo.TopItemResult, error) {
	var results []domainRepo.TopItemResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			m.id as item_id,
			m.name as item_name,
			m.category as category,
			COALESCE(SUM(tl.quantity), 0) as sold,
			COALESCE(SUM(tl.line_total), 0) as revenue
		FROM transaction_lines tl
		JOIN menu_items m ON m.id = tl.menu_item_id
		JOIN transactions t ON t.id = tl.transaction_id
		WHERE t.property_id = ?
		AND t.type <> ? AND t.voided_at IS NULL
		AND t.deleted_at IS NULL AND tl.deleted_at IS NULL
		GROUP BY m.id, m.name, m.category
		ORDER BY revenue DESC
		LIMIT ?
	`, propertyOrNil(ctx), enum.TransactionTypeProforma, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetRoomOccupancy(ctx context.Context, limit int) ([]domainRepo.RoomOccupancyResult, error) {
	var results []domainRepo.RoomOccupancyResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			r.id as room_id,
			r.number as number,
			r.room_type as room_type,
			r.booked as booked,
			COALESCE(SUM(tl.line_total), 0) as revenue
		FROM rooms r
		LEFT JOIN transaction_lines tl ON tl.room_id = r.id AND tl.deleted_at IS NULL
		LEFT JOIN transactions t ON t.id = tl.transaction_id
			AND t.type <> ? AND t.voided_at IS NULL AND t.deleted_at IS NULL
		WHERE r.property_id = ? AND r.deleted_at IS NULL
		GROUP BY r.id, r.number, r.room_type, r.booked
		ORDER BY booked DESC
		LIMIT ?
	`, enum.TransactionTypeProforma, propertyOrNil(ctx), limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetDailyRevenue(ctx context.Context, days int) ([]domainRepo.DailyRevenueResult, error) {
	results := make([]domainRepo.DailyRevenueResult, 0, days)
	now := time.Now()
	propertyID := propertyOrNil(ctx)

	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)

		var revenue sql.NullFloat64
		err := r.db.WithContext(ctx).Raw(`
			SELECT COALESCE(SUM(total_amount), 0)
			FROM transactions
			WHERE property_id = ? AND type <> ? AND voided_at IS NULL AND deleted_at IS NULL
			AND issued_at >= ? AND issued_at < ?
		`, propertyID, enum.TransactionTypeProforma, startOfDay, endOfDay).Scan(&revenue).Error
		if err != nil {
			return nil, err
		}

		var collected sql.NullFloat64
		err = r.db.WithContext(ctx).Raw(`
			SELECT COALESCE(SUM(pr.amount), 0)
			FROM payment_records pr
			JOIN transactions t ON t.id = pr.transaction_id
			WHERE t.property_id = ? AND t.voided_at IS NULL AND t.deleted_at IS NULL
			AND pr.paid_at >= ? AND pr.paid_at < ?
		`, propertyID, startOfDay, endOfDay).Scan(&collected).Error
		if err != nil {
			return nil, err
		}

		results = append(results, domainRepo.DailyRevenueResult{
			Date:      startOfDay,
			Revenue:   revenue.Float64,
			Collected: collected.Float64,
		})
	}

	return results, nil
}

func (r *analyticsRepository) GetTypeBreakdown(ctx context.Context, start, end time.Time) ([]domainRepo.TypeBreakdownResult, error) {
	var results []domainRepo.TypeBreakdownResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			type as type,
			COUNT(id) as count,
			COALESCE(SUM(total_amount), 0) as revenue
		FROM transactions
		WHERE property_id = ? AND voided_at IS NULL AND deleted_at IS NULL
		AND issued_at >= ? AND issued_at < ?
		GROUP BY type
		ORDER BY type ASC
	`, propertyOrNil(ctx), start, end).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

// GetOutstandingBalance sums what guests still owe on open folios and sales
func (r *analyticsRepository) GetOutstandingBalance(ctx context.Context) (float64, error) {
	var balance float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(balance), 0)
		FROM transactions
		WHERE property_id = ? AND type <> ? AND voided_at IS NULL AND deleted_at IS NULL
		AND status <> ?
	`, propertyOrNil(ctx), enum.TransactionTypeProforma, enum.SettlementStatusPaid).Scan(&balance).Error

	return balance, err
}

func (r *analyticsRepository) GetTotalRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM transactions
		WHERE property_id = ? AND type <> ? AND voided_at IS NULL AND deleted_at IS NULL
	`, propertyOrNil(ctx), enum.TransactionTypeProforma).Scan(&revenue).Error

	return revenue, err
}

func (r *analyticsRepository) GetCollectedToday(ctx context.Context) (float64, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var collected float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(pr.amount), 0)
		FROM payment_records pr
		JOIN transactions t ON t.id = pr.transaction_id
		WHERE t.property_id = ? AND t.voided_at IS NULL AND t.deleted_at IS NULL
		AND pr.paid_at >= ?
	`, propertyOrNil(ctx), startOfDay).Scan(&collected).Error

	return collected, err
}
