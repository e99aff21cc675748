package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/billing-tracker/internal/pkg/constants"
)

// Binder reports body and query binding failures as validation errors.
// A path id that does not parse matches no resource and is a 404.
type Binder struct {
	defaultBinder *echo.DefaultBinder
}

func NewBinder() *Binder {
	return &Binder{defaultBinder: &echo.DefaultBinder{}}
}

func (b *Binder) Bind(i interface{}, c echo.Context) error {
	if err := b.defaultBinder.BindPathParams(c, i); err != nil {
		return echo.ErrNotFound.WithInternal(err)
	}

	method := c.Request().Method
	if method == http.MethodGet || method == http.MethodDelete || method == http.MethodHead {
		if err := b.defaultBinder.BindQueryParams(c, i); err != nil {
			return invalidRequest(err)
		}
	}

	if err := b.defaultBinder.BindBody(c, i); err != nil {
		return invalidRequest(err)
	}
	return nil
}

func invalidRequest(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return constants.Validationf("invalid request: %s", fmt.Sprint(he.Message))
	}
	return constants.Validationf("invalid request: %s", err.Error())
}
