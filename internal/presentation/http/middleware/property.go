package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	infraRepo "github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/infrastructure/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/dto/response"
)

// PropertyIDHeader carries the property the terminal is operating against.
// Every scoped route requires it; a token alone never grants property access.
const PropertyIDHeader = "X-Property-ID"

// PropertyMiddleware resolves the property from the request header, verifies
// the authenticated operator is a member, and stamps the property ID into the
// request context for the repository scopes.
func PropertyMiddleware(propertyRepo repository.PropertyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(PropertyIDHeader)
		if header == "" {
			response.BadRequest(c, "X-Property-ID header is required")
			c.Abort()
			return
		}

		propertyID, err := uuid.Parse(header)
		if err != nil {
			response.BadRequest(c, "Invalid property ID")
			c.Abort()
			return
		}

		property, err := propertyRepo.GetByID(c.Request.Context(), propertyID)
		if err != nil || property == nil {
			response.NotFound(c, "Property not found")
			c.Abort()
			return
		}

		userIDVal, exists := c.Get("user_id")
		if exists {
			userID, ok := userIDVal.(uuid.UUID)
			if ok && userID != uuid.Nil {
				membership, _ := propertyRepo.GetMembership(c.Request.Context(), property.ID, userID)
				if membership == nil {
					response.Forbidden(c, "Access denied to this property")
					c.Abort()
					return
				}
				c.Set("property_role", membership.Role)
			}
		}

		c.Set("property_id", property.ID)
		c.Set("property", property)

		ctx := infraRepo.WithProperty(c.Request.Context(), property.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetPropertyID retrieves the property ID from gin context
func GetPropertyID(c *gin.Context) uuid.UUID {
	propertyID, exists := c.Get("property_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := propertyID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
