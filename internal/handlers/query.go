package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseUintQuery reads an optional unsigned integer query parameter.
// Malformed values are treated as absent.
func parseUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, false
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, false
	}
	value := uint(parsed)
	return &value, true
}

// parseIntQuery reads an optional integer query parameter.
// Malformed values are treated as absent.
func parseIntQuery(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &parsed
}
