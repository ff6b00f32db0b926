// Package app wires the executors and services shared by the server and the
// CLI.
package app

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"indash/config"
	"indash/database"
	dashImp "indash/pkg/dashboard/serviceImp"
	irrImp "indash/pkg/irrigation/serviceImp"
	"indash/pkg/metrics"
	monImp "indash/pkg/monitoring/serviceImp"
	planImp "indash/pkg/planning/serviceImp"
	"indash/pkg/provitas"
	"indash/pkg/query/repository"
	"indash/pkg/query/repositoryImp"
	rainImp "indash/pkg/rainfall/serviceImp"
	sumImp "indash/pkg/summary/serviceImp"
)

type App struct {
	Config  config.AppConfig
	DB      *gorm.DB
	Exec    repository.Executor
	Metrics *metrics.Metrics

	Provitas   *provitas.Cache
	Monitoring *monImp.MonitoringSvc
	Planning   *planImp.PlanningSvc
	Irrigation *irrImp.IrrigationSvc
	Summary    *sumImp.SummarySvc
	Rainfall   *rainImp.RainfallSvc
	Dashboard  *dashImp.DashboardSvc
}

// New builds the service graph. reg may be nil to run without metrics.
func New(cfg config.AppConfig, log *zap.Logger, reg prometheus.Registerer) (*App, error) {
	a := &App{Config: cfg}
	if reg != nil {
		a.Metrics = metrics.New(reg)
	}

	switch cfg.QueryBackend {
	case config.BackendSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if cfg.SeedDemo {
			if err := database.SeedDemo(db); err != nil {
				return nil, fmt.Errorf("seed demo: %w", err)
			}
		}
		a.DB = db
		a.Exec = repositoryImp.NewSQLite(db, log, a.Metrics)
	case config.BackendHTTP:
		a.Exec = repositoryImp.NewHTTP(cfg.SourceURLs(), cfg.QueryTimeout, log, a.Metrics)
	default:
		return nil, fmt.Errorf("unknown query backend %q", cfg.QueryBackend)
	}

	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }

	a.Provitas = provitas.NewCache(a.Exec, log, a.Metrics)
	a.Monitoring = monImp.NewMonitoringService(a.Exec, log, now)
	a.Planning = planImp.NewPlanningService(a.Exec, a.Provitas, log)
	a.Irrigation = irrImp.NewIrrigationService(a.Exec, log)
	a.Summary = sumImp.NewSummaryService(a.Monitoring, a.Planning, log)
	a.Rainfall = rainImp.NewRainfallService(a.Exec, log, now)
	a.Dashboard = dashImp.NewDashboardService(a.Exec, a.Monitoring, a.Planning, a.Irrigation, a.Summary, a.Rainfall, a.Metrics, log, now)
	return a, nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
