package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/ougirez/billing-tracker/internal/api/controller"
	"github.com/ougirez/billing-tracker/internal/pkg/config"
	"github.com/ougirez/billing-tracker/internal/pkg/logger"
	"github.com/ougirez/billing-tracker/internal/pkg/store"
	"github.com/ougirez/billing-tracker/internal/service/billing"
	"github.com/ougirez/billing-tracker/internal/service/facilities"
	"github.com/ougirez/billing-tracker/internal/service/settings"
	"github.com/ougirez/billing-tracker/internal/service/statuses"
	"github.com/ougirez/billing-tracker/web"
)

type APIService struct {
	router      *echo.Echo
	debugErrors bool

	facilitiesService *facilities.Service
	billingService    *billing.Service
	statusesService   *statuses.Service
	settingsService   *settings.Service
}

// Serve blocks until the server stops. A graceful Shutdown is not an error.
func (svc *APIService) Serve(addr string) error {
	logger.Infof(context.Background(), "listening on %s", addr)
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func (svc *APIService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	svc.router.ServeHTTP(w, r)
}

func NewAPIService(cfg *config.Config, store store.Store) (*APIService, error) {
	svc := &APIService{
		router:      echo.New(),
		debugErrors: cfg.DebugErrors,
	}

	svc.router.HideBanner = true
	svc.router.HidePort = true
	svc.router.Logger.SetLevel(echoLogLevel(cfg.LogLevel))
	svc.router.JSONSerializer = NewSerializer()
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = svc.httpErrorHandler

	svc.router.Use(middleware.Recover())
	svc.router.Use(requestIDMiddleware())
	svc.router.Use(requestLoggerMiddleware())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	svc.facilitiesService = facilities.NewFacilitiesService(store)
	svc.billingService = billing.NewBillingService(store)
	svc.statusesService = statuses.NewStatusesService(store)
	svc.settingsService = settings.NewSettingsService(store)

	cntrl := controller.NewController(
		svc.facilitiesService,
		svc.billingService,
		svc.statusesService,
		svc.settingsService,
		store,
	)

	svc.router.FileFS("/", web.IndexFile, web.FS)

	api := svc.router.Group("/api")

	groups := api.Group("/facility-groups")
	groups.GET("", cntrl.ListFacilityGroups)
	groups.POST("", cntrl.CreateFacilityGroup)
	groups.PUT("/:id", cntrl.UpdateFacilityGroup)
	groups.DELETE("/:id", cntrl.DeleteFacilityGroup)

	facilitiesGroup := api.Group("/facilities")
	facilitiesGroup.GET("", cntrl.ListFacilities)
	facilitiesGroup.POST("", cntrl.CreateFacility)
	facilitiesGroup.PUT("/:id", cntrl.UpdateFacility)
	facilitiesGroup.DELETE("/:id", cntrl.DeleteFacility)

	records := api.Group("/billing-records")
	records.GET("", cntrl.ListBillingRecords)
	records.POST("", cntrl.SaveBillingRecord)
	records.GET("/summary", cntrl.BillingSummary)

	customDates := api.Group("/custom-dates")
	customDates.GET("/:groupId", cntrl.ListCustomDates)
	customDates.POST("", cntrl.ReplaceCustomDates)

	settingsGroup := api.Group("/settings")
	settingsGroup.GET("", cntrl.GetSettings)
	settingsGroup.POST("", cntrl.SaveSettings)

	statusGroups := api.Group("/status-groups")
	statusGroups.GET("", cntrl.ListStatusGroups)
	statusGroups.POST("", cntrl.CreateStatusGroup)
	statusGroups.PUT("/:id", cntrl.UpdateStatusGroup)
	statusGroups.DELETE("/:id", cntrl.DeleteStatusGroup)

	statusesGroup := api.Group("/statuses")
	statusesGroup.GET("", cntrl.ListStatuses)
	statusesGroup.POST("", cntrl.CreateStatus)
	statusesGroup.PUT("/:id", cntrl.UpdateStatus)
	statusesGroup.DELETE("/:id", cntrl.DeleteStatus)

	api.GET("/billing-statuses/group/:groupId", cntrl.ListStatusesByGroup)

	api.GET("/health", cntrl.Health)

	return svc, nil
}
