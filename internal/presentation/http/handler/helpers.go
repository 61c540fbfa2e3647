package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrfandu1/Inventory-Stocks/internal/application/service"
)

// GetSession extracts the authenticated session from the Gin context.
// Returns nil when the request carries no valid authentication.
func GetSession(c *gin.Context) *service.Session {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}

	email := ""
	if emailVal, exists := c.Get("user_email"); exists {
		if s, ok := emailVal.(string); ok {
			email = s
		}
	}

	return &service.Session{UserID: userID, Email: email}
}
