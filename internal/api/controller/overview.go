package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/pkg/constants"
)

func (c *Controller) GetVerticalOverview(ctx echo.Context) error {
	year, err := c.year(ctx)
	if err != nil {
		return err
	}

	category := ctx.QueryParam("category")
	if category == "" {
		category = domain.CategoryCore
	}

	verticals, err := c.service.VerticalsByCategory(ctx.Request().Context(), year, category)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, verticals)
}

func (c *Controller) GetGeographyOverview(ctx echo.Context) error {
	year, err := c.year(ctx)
	if err != nil {
		return err
	}

	grouped := false
	if raw := ctx.QueryParam("grouped"); raw != "" {
		grouped, err = strconv.ParseBool(raw)
		if err != nil {
			return constants.BadRequestf("grouped must be a boolean")
		}
	}

	if grouped {
		groups, err := c.service.GroupedGeographyOverview(ctx.Request().Context(), year)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, groups)
	}

	geographies, err := c.service.GeographyOverview(ctx.Request().Context(), year)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, geographies)
}
