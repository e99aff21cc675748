package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/billing-tracker/internal/domain/dto"
)

func (c *Controller) ListFacilities(ctx echo.Context) error {
	list, err := c.facilities.ListFacilities(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, list)
}

func (c *Controller) CreateFacility(ctx echo.Context) error {
	var req dto.FacilityRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	id, err := c.facilities.CreateFacility(ctx.Request().Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, created(id))
}

func (c *Controller) UpdateFacility(ctx echo.Context) error {
	var req dto.FacilityRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	if err := c.facilities.UpdateFacility(ctx.Request().Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, success)
}

func (c *Controller) DeleteFacility(ctx echo.Context) error {
	var req dto.IDParam
	if err := bind(ctx, &req); err != nil {
		return err
	}

	if err := c.facilities.DeleteFacility(ctx.Request().Context(), req.ID); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, success)
}
