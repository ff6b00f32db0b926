package controller

import "github.com/labstack/echo/v4"

type DashboardController interface {
	Period(c echo.Context) error
	Resolve(c echo.Context) error
	Label(c echo.Context) error
	Select(c echo.Context) error
	Snapshot(c echo.Context) error
	Monitoring(c echo.Context) error
	Planning(c echo.Context) error
	Irrigation(c echo.Context) error
	Summary(c echo.Context) error
	Rainfall(c echo.Context) error
	ExportIrrigation(c echo.Context) error
}
