package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/billing-tracker/internal/domain/dto"
)

func (c *Controller) ListStatusGroups(ctx echo.Context) error {
	groups, err := c.statuses.ListGroups(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, groups)
}

func (c *Controller) CreateStatusGroup(ctx echo.Context) error {
	var req dto.StatusGroupRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	id, err := c.statuses.CreateGroup(ctx.Request().Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, created(id))
}

func (c *Controller) UpdateStatusGroup(ctx echo.Context) error {
	var req dto.StatusGroupRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	if err := c.statuses.UpdateGroup(ctx.Request().Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, success)
}

func (c *Controller) DeleteStatusGroup(ctx echo.Context) error {
	var req dto.IDParam
	if err := bind(ctx, &req); err != nil {
		return err
	}

	if err := c.statuses.DeleteGroup(ctx.Request().Context(), req.ID); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, success)
}

func (c *Controller) ListStatuses(ctx echo.Context) error {
	list, err := c.statuses.ListStatuses(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, list)
}

func (c *Controller) ListStatusesByGroup(ctx echo.Context) error {
	var req dto.GroupIDParam
	if err := bind(ctx, &req); err != nil {
		return err
	}

	list, err := c.statuses.ListByGroup(ctx.Request().Context(), req.GroupID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, list)
}

func (c *Controller) CreateStatus(ctx echo.Context) error {
	var req dto.StatusRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	id, err := c.statuses.CreateStatus(ctx.Request().Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, created(id))
}

func (c *Controller) UpdateStatus(ctx echo.Context) error {
	var req dto.StatusRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	if err := c.statuses.UpdateStatus(ctx.Request().Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, success)
}

func (c *Controller) DeleteStatus(ctx echo.Context) error {
	var req dto.IDParam
	if err := bind(ctx, &req); err != nil {
		return err
	}

	if err := c.statuses.DeleteStatus(ctx.Request().Context(), req.ID); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, success)
}
