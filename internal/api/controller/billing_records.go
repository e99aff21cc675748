package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/billing-tracker/internal/domain/dto"
)

func (c *Controller) ListBillingRecords(ctx echo.Context) error {
	records, err := c.billing.ListRecords(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, records)
}

func (c *Controller) SaveBillingRecord(ctx echo.Context) error {
	var req dto.BillingRecordRequest
	if err := bind(ctx, &req); err != nil {
		return err
	}

	if err := c.billing.SaveRecord(ctx.Request().Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, success)
}

func (c *Controller) BillingSummary(ctx echo.Context) error {
	summary, err := c.billing.Summary(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, summary)
}
