package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetCashierID extracts the authenticated cashier ID from the gin context.
// It is set by the auth middleware; nil means the request is unauthenticated.
func GetCashierID(c *gin.Context) *uuid.UUID {
	value, exists := c.Get("cashier_id")
	if !exists {
		return nil
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// parseDate parses a YYYY-MM-DD query parameter. Empty input returns nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseUUIDParam parses a :id style path parameter.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
