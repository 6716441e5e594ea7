package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/econdash/internal/service/dashboard"
)

func (c *Controller) Project(ctx echo.Context) error {
	var req dashboard.ProjectRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	res, err := c.service.Project(ctx.Request().Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, res)
}
