package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/planwise/capacity-planning-api/internal/constants"
	apierrors "github.com/planwise/capacity-planning-api/internal/errors"
)

// RequireTeam extracts the caller's team from the X-User-Team header and
// stores it in the request context. Every /api route is scoped to a team, so
// requests without the header are rejected before touching a handler.
func RequireTeam() gin.HandlerFunc {
	return func(c *gin.Context) {
		team := c.GetHeader(constants.HeaderTeam)
		if team == "" {
			apierrors.MissingTeamContext(c)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTeam, team)
		c.Next()
	}
}

// GetTeam returns the team set by RequireTeam for the current request.
func GetTeam(c *gin.Context) string {
	return c.GetString(constants.ContextKeyTeam)
}
