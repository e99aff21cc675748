package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) GetSettings(ctx echo.Context) error {
	values, err := c.settings.Get(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, values)
}

func (c *Controller) SaveSettings(ctx echo.Context) error {
	values := make(map[string]any)
	if err := ctx.Bind(&values); err != nil {
		return err
	}

	if err := c.settings.Save(ctx.Request().Context(), values); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, success)
}
