package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/pkg/constants"
	"github.com/ougirez/billing-tracker/internal/pkg/logger"
)

const internalErrorMessage = "Internal server error"

func (svc *APIService) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	msg := err.Error()
	code := constants.CodeOf(err)

	var he *echo.HTTPError
	if code == http.StatusInternalServerError && errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
		if code == http.StatusNotFound {
			msg = constants.ErrRouteNotFound.Error()
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Errorf(c.Request().Context(), "%s %s: %s", c.Request().Method, c.Request().URL.Path, err.Error())
		if !svc.debugErrors {
			msg = internalErrorMessage
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, domain.ErrorResponse{Error: msg})
}
