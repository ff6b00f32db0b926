package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"indash/entities"
	"indash/pkg/dashboard/service"
	irrsvc "indash/pkg/irrigation/service"
	"indash/pkg/location"
	"indash/pkg/metrics"
	monsvc "indash/pkg/monitoring/service"
	plansvc "indash/pkg/planning/service"
	"indash/pkg/query/repository"
	rainsvc "indash/pkg/rainfall/service"
	sumsvc "indash/pkg/summary/service"
)

var noSelection = entities.Availability{
	Reason:  entities.ReasonInvalidLocation,
	Message: "no location selected",
}

type DashboardSvc struct {
	exec       repository.Executor
	monitoring monsvc.MonitoringService
	planning   plansvc.PlanningService
	irrigation irrsvc.IrrigationService
	summary    sumsvc.SummaryService
	rainfall   rainsvc.RainfallService
	metrics    *metrics.Metrics
	log        *zap.Logger
	now        func() time.Time

	generation atomic.Uint64

	mu      sync.RWMutex
	period  entities.Period
	current *entities.Snapshot
}

var _ service.DashboardService = (*DashboardSvc)(nil)

func NewDashboardService(
	exec repository.Executor,
	mon monsvc.MonitoringService,
	plan plansvc.PlanningService,
	irr irrsvc.IrrigationService,
	sum sumsvc.SummaryService,
	rain rainsvc.RainfallService,
	m *metrics.Metrics,
	log *zap.Logger,
	now func() time.Time,
) *DashboardSvc {
	if now == nil {
		now = time.Now
	}
	return &DashboardSvc{
		exec:       exec,
		monitoring: mon,
		planning:   plan,
		irrigation: irr,
		summary:    sum,
		rainfall:   rain,
		metrics:    m,
		log:        log.Named("dashboard"),
		now:        now,
		period:     entities.Period{Year: now().Year(), Season: entities.SeasonWet},
	}
}

func (s *DashboardSvc) LoadReferencePeriod(ctx context.Context) entities.Period {
	p := entities.Period{Year: s.now().Year(), Season: entities.SeasonWet}
	resp, err := s.exec.Execute(ctx, "select * from latest", repository.SourcePlanning)
	switch {
	case err != nil:
		s.log.Warn("reference period unavailable, using current year", zap.Error(err))
	default:
		if row, ok := resp.First(); ok {
			if y := row.Int("TAHUN"); y > 0 {
				p.Year = y
			}
			if m := row.Int("MUSIM", "SEA"); m == entities.SeasonWet || m == entities.SeasonDry {
				p.Season = m
			}
		}
	}
	s.mu.Lock()
	s.period = p
	s.mu.Unlock()
	s.log.Info("reference period", zap.Int("year", p.Year), zap.Int("season", p.Season))
	return p
}

func (s *DashboardSvc) Period() entities.Period {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.period
}

func (s *DashboardSvc) OnLocationSelected(ctx context.Context, id string) (*entities.Snapshot, bool, error) {
	if err := location.Validate(id); err != nil {
		return nil, false, fmt.Errorf("select location: %w", err)
	}
	gen := s.generation.Add(1)
	info := location.Resolve(id)
	period := s.Period()
	snap := &entities.Snapshot{
		Generation:  gen,
		SelectionID: uuid.NewString(),
		LocationID:  id,
		Level:       info.Level,
		Period:      period,
	}
	log := s.log.With(
		zap.String("selection", snap.SelectionID),
		zap.Uint64("generation", gen),
		zap.String("id", id),
		zap.Stringer("level", info.Level),
	)
	start := s.now()

	// Panels degrade independently; none of them returns an error.
	var g errgroup.Group
	g.Go(func() error {
		snap.Monitoring, snap.MonitoringAvailability = s.monitoring.Display(ctx, id)
		return nil
	})
	g.Go(func() error {
		snap.Planning, snap.PlanningAvailability = s.planning.Display(ctx, id, period)
		return nil
	})
	g.Go(func() error {
		snap.Irrigation, snap.IrrigationAvailability = s.irrigation.Schedule(ctx, id, period)
		return nil
	})
	g.Go(func() error {
		snap.Summary, snap.SummaryAvailability = s.summary.Aggregate(ctx, id, &period)
		return nil
	})
	g.Go(func() error {
		snap.Rainfall, snap.RainfallAvailability = s.rainfall.Outlook(ctx, id)
		return nil
	})
	_ = g.Wait()
	snap.ResolvedAt = s.now()

	for panel, a := range map[string]entities.Availability{
		"monitoring": snap.MonitoringAvailability,
		"planning":   snap.PlanningAvailability,
		"irrigation": snap.IrrigationAvailability,
		"summary":    snap.SummaryAvailability,
		"rainfall":   snap.RainfallAvailability,
	} {
		if !a.Available {
			s.metrics.Unavailable(panel, string(a.Reason))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if latest := s.generation.Load(); gen != latest {
		s.metrics.StaleDiscarded()
		log.Warn("discarding superseded selection", zap.Uint64("latest", latest))
		return snap, false, nil
	}
	s.current = snap
	s.metrics.SelectionResolved()
	log.Info("selection resolved", zap.Duration("took", snap.ResolvedAt.Sub(start)))
	return snap, true, nil
}

func (s *DashboardSvc) Snapshot() *entities.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *DashboardSvc) Monitoring() (*entities.MonitoringDisplay, entities.Availability) {
	snap := s.Snapshot()
	if snap == nil {
		return nil, noSelection
	}
	return snap.Monitoring, snap.MonitoringAvailability
}

func (s *DashboardSvc) Planning() (*entities.PlanningDisplay, entities.Availability) {
	snap := s.Snapshot()
	if snap == nil {
		return nil, noSelection
	}
	return snap.Planning, snap.PlanningAvailability
}

func (s *DashboardSvc) Irrigation() (*entities.IrrigationSchedule, entities.Availability) {
	snap := s.Snapshot()
	if snap == nil {
		return nil, noSelection
	}
	return snap.Irrigation, snap.IrrigationAvailability
}

func (s *DashboardSvc) Summary() (*entities.Summary, entities.Availability) {
	snap := s.Snapshot()
	if snap == nil {
		return nil, noSelection
	}
	return snap.Summary, snap.SummaryAvailability
}

func (s *DashboardSvc) Rainfall() (*entities.RainfallSeries, entities.Availability) {
	snap := s.Snapshot()
	if snap == nil {
		return nil, noSelection
	}
	return snap.Rainfall, snap.RainfallAvailability
}

func hierarchyQuery(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = repository.Quote(id)
	}
	return fmt.Sprintf(
		"SELECT ID_ADMIN, NAMA FROM t2_admin WHERE ID_ADMIN IN (%s) ORDER BY LENGTH(ID_ADMIN) DESC",
		strings.Join(quoted, ", "))
}

func (s *DashboardSvc) LocationHierarchyLabel(ctx context.Context, id string) string {
	if location.Validate(id) != nil {
		return id
	}
	ids := location.Ancestors(id)
	if len(ids) == 0 {
		return id
	}
	resp, err := s.exec.Execute(ctx, hierarchyQuery(ids), repository.SourcePlanning)
	if err != nil {
		s.log.Warn("hierarchy label lookup failed", zap.String("id", id), zap.Error(err))
		return id
	}
	row, ok := resp.First()
	if !ok {
		return id
	}
	name := row.String("NAMA")
	if name == "" {
		return id
	}
	return name + " - " + id
}
