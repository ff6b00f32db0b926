package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

type HealthCtrl struct {
	db      *gorm.DB
	backend string
	period  func() (year, season int)
}

// NewHealthCtrl reports on the local database when db is set. The http
// backend runs without one.
func NewHealthCtrl(db *gorm.DB, backend string, period func() (year, season int)) *HealthCtrl {
	return &HealthCtrl{db: db, backend: backend, period: period}
}

type sub struct {
	OK   bool   `json:"ok"`
	Skip bool   `json:"skipped,omitempty"`
	Err  string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := sub{OK: true}
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil {
			db = sub{Err: "db.DB(): " + err.Error()}
		} else if err := sqlDB.PingContext(ctx); err != nil {
			db = sub{Err: "ping: " + err.Error()}
		}
	} else {
		db.Skip = true
	}

	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": db.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"backend":    h.backend,
		"checks": map[string]any{
			"database": db,
		},
		"time": time.Now().Format(time.RFC3339),
	}
	if h.period != nil {
		y, s := h.period()
		resp["period"] = map[string]int{"year": y, "season": s}
	}

	return c.JSON(status, resp)
}
