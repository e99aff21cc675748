package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/billing-tracker/internal/domain/dto"
)

func (c *Controller) ListFacilityGroups(ctx echo.Context) error {
	groups, err := c.facilities.ListGroups(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, groups)
}

func (c *Controller) CreateFacilityGroup(ctx echo.Context) error {
	var req dto.FacilityGroupRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	id, err := c.facilities.CreateGroup(ctx.Request().Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, created(id))
}

func (c *Controller) UpdateFacilityGroup(ctx echo.Context) error {
	var req dto.FacilityGroupRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	if err := c.facilities.UpdateGroup(ctx.Request().Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, success)
}

func (c *Controller) DeleteFacilityGroup(ctx echo.Context) error {
	var req dto.IDParam
	if err := bind(ctx, &req); err != nil {
		return err
	}

	if err := c.facilities.DeleteGroup(ctx.Request().Context(), req.ID); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, success)
}
