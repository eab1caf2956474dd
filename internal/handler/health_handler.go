package handler

import (
	"net/http"

	"recruiting-crm/prometheus"

	"github.com/labstack/echo/v4"
)

// HealthCheck handles the liveness probe.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// MetricsHandler serves the Prometheus metrics endpoint.
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
