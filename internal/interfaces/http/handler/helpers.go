package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/toystore/backend/internal/interfaces/http/middleware"
)

var errNoAuthenticatedUser = errors.New("user ID not found in context")

// parseIDParam parses the :id path parameter as a UUID
func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// currentUserID extracts the authenticated user's ID from JWT claims
func currentUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr := middleware.GetJWTUserID(c)
	if userIDStr == "" {
		return uuid.Nil, errNoAuthenticatedUser
	}
	return uuid.Parse(userIDStr)
}
