package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/econdash/internal/domain"
)

func (c *Controller) GetEntityDetails(dim domain.Dimension) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		year, err := c.year(ctx)
		if err != nil {
			return err
		}

		details, err := c.service.EntityDetails(ctx.Request().Context(), ctx.Param("id"), dim, year)
		if err != nil {
			return err
		}

		return ctx.JSON(http.StatusOK, details)
	}
}

func (c *Controller) GetApportionment(ctx echo.Context) error {
	year, err := c.year(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Apportion(ctx.Request().Context(), ctx.Param("id"), year)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, res)
}
