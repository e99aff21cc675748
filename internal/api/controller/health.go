package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/pkg/logger"
)

func (c *Controller) Health(ctx echo.Context) error {
	if err := c.db.Ping(ctx.Request().Context()); err != nil {
		logger.Warnf(ctx.Request().Context(), "health check: database ping failed: %s", err.Error())
		return ctx.JSON(http.StatusServiceUnavailable, domain.HealthResponse{Status: "unhealthy", Database: "disconnected"})
	}

	return ctx.JSON(http.StatusOK, domain.HealthResponse{Status: "healthy", Database: "connected"})
}
