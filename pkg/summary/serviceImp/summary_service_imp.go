package serviceImp

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"indash/entities"
	"indash/pkg/location"
	monsvc "indash/pkg/monitoring/service"
	plansvc "indash/pkg/planning/service"
	"indash/pkg/summary"
	"indash/pkg/summary/service"
)

type SummarySvc struct {
	monitoring monsvc.MonitoringService
	planning   plansvc.PlanningService
	log        *zap.Logger
}

var _ service.SummaryService = (*SummarySvc)(nil)

func NewSummaryService(m monsvc.MonitoringService, p plansvc.PlanningService, log *zap.Logger) *SummarySvc {
	return &SummarySvc{monitoring: m, planning: p, log: log.Named("summary")}
}

type levelResult struct {
	data  *entities.SummaryData
	avail entities.Availability
}

func (s *SummarySvc) Aggregate(ctx context.Context, id string, period *entities.Period) (*entities.Summary, entities.Availability) {
	if err := location.Validate(id); err != nil {
		return nil, entities.InvalidLocation(id)
	}
	chain := summary.Chain(id)
	results := make([]levelResult, len(chain))

	// Levels fail independently; no goroutine returns an error.
	var g errgroup.Group
	for i, info := range chain {
		g.Go(func() error {
			results[i] = s.level(ctx, info, period)
			return nil
		})
	}
	_ = g.Wait()

	out := &entities.Summary{Availability: make(map[entities.Level]entities.Availability, len(chain))}
	overall := entities.Availability{}
	for i, info := range chain {
		r := results[i]
		out.Set(info.Level, r.data)
		out.Availability[info.Level] = r.avail
		if r.avail.Available && !overall.Available {
			overall = entities.Available(fmt.Sprintf("%s summary available", info.Level))
		}
	}
	if !overall.Available {
		overall = out.Availability[entities.LevelNational]
	}
	return out, overall
}

func (s *SummarySvc) level(ctx context.Context, info location.Info, period *entities.Period) levelResult {
	var (
		mon          *entities.MonitoringRecord
		plan         *entities.PlanningRecord
		monErr, pErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		mon, monErr = s.monitoring.Latest(ctx, info)
		return nil
	})
	g.Go(func() error {
		plan, pErr = s.planning.Record(ctx, info, period)
		return nil
	})
	_ = g.Wait()

	if monErr != nil || pErr != nil {
		s.log.Warn("summary level fetch failed",
			zap.String("level", info.Level.String()), zap.String("id", info.ID),
			zap.NamedError("monitoring", monErr), zap.NamedError("planning", pErr))
	}
	if mon == nil && plan == nil {
		if err := errors.Join(monErr, pErr); err != nil {
			return levelResult{avail: entities.NetworkError(err)}
		}
		a := entities.Availability{
			Reason:  entities.ReasonNoDataForPeriod,
			Message: fmt.Sprintf("no data for %s %s", info.Level, info.ID),
			Details: "neither monitoring nor planning has a row for this location",
		}
		if period != nil {
			a = entities.NoDataForPeriod(info.Level, info.ID, *period)
		}
		return levelResult{avail: a}
	}

	eff := entities.Period{}
	if period != nil {
		eff = *period
	} else if plan != nil {
		eff = recordPeriod(plan)
	}
	d := summary.Combine(info, mon, plan, eff)

	details := "monitoring and planning"
	switch {
	case mon == nil:
		details = "planning only"
	case plan == nil:
		details = "monitoring only"
	}
	return levelResult{data: d, avail: entities.Available(details)}
}

func recordPeriod(r *entities.PlanningRecord) entities.Period {
	if r.National != nil {
		return entities.Period{Year: r.National.Year, Season: r.National.Season}
	}
	return entities.Period{Year: r.Regional.Year, Season: r.Regional.Season}
}
