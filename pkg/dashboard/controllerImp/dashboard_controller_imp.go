package controllerImp

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"indash/entities"
	"indash/pkg/dashboard/controller"
	"indash/pkg/dashboard/service"
	"indash/pkg/export"
	irrsvc "indash/pkg/irrigation/service"
	"indash/pkg/location"
	sumsvc "indash/pkg/summary/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DashboardCtrl struct {
	dash       service.DashboardService
	irrigation irrsvc.IrrigationService
	summary    sumsvc.SummaryService
}

var _ controller.DashboardController = (*DashboardCtrl)(nil)

func New(dash service.DashboardService, irr irrsvc.IrrigationService, sum sumsvc.SummaryService) *DashboardCtrl {
	return &DashboardCtrl{dash: dash, irrigation: irr, summary: sum}
}

func badID(c echo.Context, id string) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"error":        "invalid location id",
		"availability": entities.InvalidLocation(id),
	})
}

func (h *DashboardCtrl) Period(c echo.Context) error {
	p := h.dash.Period()
	return c.JSON(http.StatusOK, map[string]any{
		"year":   p.Year,
		"season": p.Season,
		"name":   p.SeasonName(),
	})
}

func (h *DashboardCtrl) Resolve(c echo.Context) error {
	id := c.Param("id")
	if location.Validate(id) != nil {
		return badID(c, id)
	}
	info := location.Resolve(id)
	resp := map[string]any{
		"id":          info.ID,
		"level":       info.Level,
		"tableSuffix": info.Suffix,
		"idColumn":    info.IDColumn(),
		"monitoring":  info.Monitoring(),
		"planning":    info.Planning(),
		"ancestors":   location.Ancestors(id),
	}
	if t, ok := info.Irrigation(); ok {
		resp["irrigation"] = t
	}
	if pred, norm, ok := info.Rainfall(); ok {
		resp["rainfall"] = map[string]location.Target{"prediction": pred, "normal": norm}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *DashboardCtrl) Label(c echo.Context) error {
	id := c.Param("id")
	return c.JSON(http.StatusOK, map[string]any{
		"id":    id,
		"label": h.dash.LocationHierarchyLabel(c.Request().Context(), id),
	})
}

func (h *DashboardCtrl) Select(c echo.Context) error {
	id := c.Param("id")
	snap, applied, err := h.dash.OnLocationSelected(c.Request().Context(), id)
	if errors.Is(err, location.ErrInvalidID) {
		return badID(c, id)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"applied": applied, "snapshot": snap})
}

func (h *DashboardCtrl) Snapshot(c echo.Context) error {
	snap := h.dash.Snapshot()
	if snap == nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "no location selected"})
	}
	return c.JSON(http.StatusOK, snap)
}

func panel(c echo.Context, data any, a entities.Availability) error {
	return c.JSON(http.StatusOK, map[string]any{"data": data, "availability": a})
}

func (h *DashboardCtrl) Monitoring(c echo.Context) error {
	d, a := h.dash.Monitoring()
	return panel(c, d, a)
}

func (h *DashboardCtrl) Planning(c echo.Context) error {
	d, a := h.dash.Planning()
	return panel(c, d, a)
}

func (h *DashboardCtrl) Irrigation(c echo.Context) error {
	d, a := h.dash.Irrigation()
	return panel(c, d, a)
}

func (h *DashboardCtrl) Summary(c echo.Context) error {
	d, a := h.dash.Summary()
	return panel(c, d, a)
}

func (h *DashboardCtrl) Rainfall(c echo.Context) error {
	d, a := h.dash.Rainfall()
	return panel(c, d, a)
}

// ExportIrrigation builds the workbook for id in the reference period,
// independent of the current selection.
func (h *DashboardCtrl) ExportIrrigation(c echo.Context) error {
	id := c.Param("id")
	if location.Validate(id) != nil {
		return badID(c, id)
	}
	ctx := c.Request().Context()
	period := h.dash.Period()

	var (
		sched *entities.IrrigationSchedule
		sum   *entities.Summary
	)
	var g errgroup.Group
	g.Go(func() error {
		sched, _ = h.irrigation.Schedule(ctx, id, period)
		return nil
	})
	g.Go(func() error {
		sum, _ = h.summary.Aggregate(ctx, id, &period)
		return nil
	})
	_ = g.Wait()

	f, err := export.IrrigationWorkbook(sched, sum)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=irigasi_%s_%d_MT%d.xlsx", id, period.Year, period.Season))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
