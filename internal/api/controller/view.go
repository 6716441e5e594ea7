package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/pkg/constants"
)

// GetView renders one dashboard tab. Missing parameters keep the default
// state; invalid ones are rejected.
func (c *Controller) GetView(ctx echo.Context) error {
	year, err := c.year(ctx)
	if err != nil {
		return err
	}

	state, ok := domain.DefaultAppState(c.defaultYear).SelectYear(year)
	if !ok {
		return constants.BadRequestf("invalid year %d", year)
	}
	if tab := ctx.QueryParam("tab"); tab != "" {
		if state, ok = state.SwitchTab(domain.Tab(tab)); !ok {
			return constants.BadRequestf("unknown tab %q", tab)
		}
	}
	if category := ctx.QueryParam("category"); category != "" {
		if state, ok = state.SelectCategory(category); !ok {
			return constants.BadRequestf("unknown category %q", category)
		}
	}

	payload, err := c.service.Render(ctx.Request().Context(), state)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, payload)
}
