package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports process liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// parsePageParam reads the "page" query parameter, defaulting to the first page.
func parsePageParam(c echo.Context) int {
	if parsed, err := strconv.Atoi(c.QueryParam("page")); err == nil && parsed > 0 {
		return parsed
	}

	return 1
}
