package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/ougirez/econdash/internal/api/controller"
	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/pkg/constants"
	"github.com/ougirez/econdash/internal/service/dashboard"
)

type Options struct {
	CORSOrigins []string
	DefaultYear domain.Year
	LogLevel    string
}

type APIService struct {
	router    *echo.Echo
	dashboard *dashboard.Service
}

// Serve blocks until the server stops. A clean Shutdown returns nil.
func (svc *APIService) Serve(addr string) error {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func (svc *APIService) Handler() http.Handler {
	return svc.router
}

func NewAPIService(dash *dashboard.Service, opts Options) *APIService {
	svc := &APIService{router: echo.New(), dashboard: dash}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(echoLogLevel(opts.LogLevel))
	svc.router.JSONSerializer = NewJSONSerializer()
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = httpErrorHandler

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	svc.router.Use(middleware.Recover())
	svc.router.Use(RequestIDMiddleware)
	svc.router.Use(AccessLogMiddleware())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  origins,
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderContentType, constants.HeaderRequestID},
		ExposeHeaders: []string{constants.HeaderRequestID},
	}))

	year := opts.DefaultYear
	if year == 0 {
		year = constants.DefaultYear
	}

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(dash, year)

	api.GET("/reference", cntrl.GetReferenceData)
	api.GET("/view", cntrl.GetView)

	verticals := api.Group("/verticals")
	verticals.GET("/overview", cntrl.GetVerticalOverview)
	verticals.GET("/:id/details", cntrl.GetEntityDetails(domain.DimensionVertical))
	verticals.GET("/:id/apportionment", cntrl.GetApportionment)

	geographies := api.Group("/geographies")
	geographies.GET("/overview", cntrl.GetGeographyOverview)
	geographies.GET("/:id/details", cntrl.GetEntityDetails(domain.DimensionGeography))

	conversion := api.Group("/conversion")
	conversion.GET("/project", cntrl.Project)

	return svc
}

func echoLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "info":
		return log.INFO
	case "warn", "warning":
		return log.WARN
	case "off":
		return log.OFF
	}
	return log.ERROR
}
