package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// PropertyIDKey is the context key for the active property
	PropertyIDKey ctxKey = "property_id"
	// SkipPropertyScopeKey is the context key for skipping property scope (admin tooling)
	SkipPropertyScopeKey ctxKey = "skip_property_scope"
)

// PropertyScope returns a GORM scope that filters by the active property.
// Applied to every query against property-scoped tables. If the property is
// missing from context the scope fails closed and returns no rows.
func PropertyScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skip, ok := ctx.Value(SkipPropertyScopeKey).(bool); ok && skip {
			return db
		}

		propertyID, ok := ctx.Value(PropertyIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: no property context means no rows, never all rows
			return db.Where("1 = 0")
		}
		return db.Where("property_id = ?", propertyID)
	}
}

// WithSkipPropertyScope adds the skip flag to context (for admin tooling)
func WithSkipPropertyScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipPropertyScopeKey, skip)
}

// WithProperty adds the active property ID to context
func WithProperty(ctx context.Context, propertyID uuid.UUID) context.Context {
	return context.WithValue(ctx, PropertyIDKey, propertyID)
}

// GetPropertyID extracts the active property ID from context
func GetPropertyID(ctx context.Context) (uuid.UUID, bool) {
	propertyID, ok := ctx.Value(PropertyIDKey).(uuid.UUID)
	return propertyID, ok
}
