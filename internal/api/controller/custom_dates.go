package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/billing-tracker/internal/domain/dto"
)

func (c *Controller) ListCustomDates(ctx echo.Context) error {
	var req dto.GroupIDParam
	if err := bind(ctx, &req); err != nil {
		return err
	}

	dates, err := c.facilities.ListCustomDates(ctx.Request().Context(), req.GroupID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dates)
}

func (c *Controller) ReplaceCustomDates(ctx echo.Context) error {
	var req dto.CustomDatesRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	if err := c.facilities.ReplaceCustomDates(ctx.Request().Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, success)
}
