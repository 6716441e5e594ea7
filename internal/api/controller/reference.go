package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) GetReferenceData(ctx echo.Context) error {
	ref, err := c.service.ReferenceData(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ref)
}
