package controller

import (
	"github.com/labstack/echo/v4"

	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/pkg/constants"
	"github.com/ougirez/econdash/internal/service/dashboard"
)

type Controller struct {
	service     *dashboard.Service
	defaultYear domain.Year
}

func NewController(service *dashboard.Service, defaultYear domain.Year) *Controller {
	return &Controller{service: service, defaultYear: defaultYear}
}

// year reads the optional ?year= parameter.
func (c *Controller) year(ctx echo.Context) (domain.Year, error) {
	year := c.defaultYear
	if err := echo.QueryParamsBinder(ctx).Int("year", &year).BindError(); err != nil {
		return 0, constants.BadRequestf("year must be an integer")
	}
	return year, nil
}
