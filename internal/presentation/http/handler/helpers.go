package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetUserRoles extracts the user roles from the Gin context
func GetUserRoles(c *gin.Context) []string {
	roles, exists := c.Get("user_roles")
	if !exists {
		return nil
	}
	return roles.([]string)
}

// IsAdmin checks if the user has the admin role
func IsAdmin(c *gin.Context) bool {
	for _, role := range GetUserRoles(c) {
		if role == "admin" {
			return true
		}
	}
	return false
}
