package controller

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/service/billing"
	"github.com/ougirez/billing-tracker/internal/service/facilities"
	"github.com/ougirez/billing-tracker/internal/service/settings"
	"github.com/ougirez/billing-tracker/internal/service/statuses"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Controller struct {
	facilities *facilities.Service
	billing    *billing.Service
	statuses   *statuses.Service
	settings   *settings.Service
	db         Pinger
}

func NewController(
	facilities *facilities.Service,
	billing *billing.Service,
	statuses *statuses.Service,
	settings *settings.Service,
	db Pinger,
) *Controller {
	return &Controller{
		facilities: facilities,
		billing:    billing,
		statuses:   statuses,
		settings:   settings,
		db:         db,
	}
}

// bind decodes path params and body into req and validates it.
func bind(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return err
	}
	return ctx.Validate(req)
}

func created(id int64) domain.SuccessResponse {
	return domain.SuccessResponse{Success: true, ID: &id}
}

var success = domain.SuccessResponse{Success: true}
