package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"indash/pkg/dashboard/controller"
)

func New(
	e *echo.Echo,
	dashCtrl controller.DashboardController,
	healthCtrl interface{ Health(echo.Context) error },
	metrics http.Handler,
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}

	e.GET("/period", dashCtrl.Period)

	loc := e.Group("/locations/:id")
	loc.GET("/resolve", dashCtrl.Resolve)
	loc.GET("/label", dashCtrl.Label)
	loc.POST("/select", dashCtrl.Select)
	loc.GET("/irrigation.xlsx", dashCtrl.ExportIrrigation)

	d := e.Group("/dashboard")
	d.GET("", dashCtrl.Snapshot)
	d.GET("/monitoring", dashCtrl.Monitoring)
	d.GET("/planning", dashCtrl.Planning)
	d.GET("/irrigation", dashCtrl.Irrigation)
	d.GET("/summary", dashCtrl.Summary)
	d.GET("/rainfall", dashCtrl.Rainfall)
	return e
}
