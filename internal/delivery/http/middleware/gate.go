package middleware

import (
	"github.com/gdugdh24/cofounders-backend/internal/logging"
	"github.com/gdugdh24/cofounders-backend/internal/usecase/gate"
	"github.com/gin-gonic/gin"
)

// AccessGate redirects page requests according to session and onboarding
// status. It must run after LoadSession.
func AccessGate(uc *gate.GateUseCase, status gate.StatusReader, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := SessionFrom(c)
		ctx := c.Request.Context()

		decision, err := uc.Evaluate(ctx, c.Request.URL.Path, session, status)
		if err != nil {
			logger.Warn(ctx, "onboarding status lookup failed, treating as incomplete",
				"path", c.Request.URL.Path, "error", err)
		}
		if decision.Redirects() {
			c.Redirect(decision.Status, decision.Location)
			c.Abort()
			return
		}
		c.Next()
	}
}
