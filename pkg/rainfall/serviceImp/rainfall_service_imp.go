package serviceImp

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"indash/entities"
	"indash/pkg/calendar"
	"indash/pkg/location"
	"indash/pkg/query/repository"
	"indash/pkg/rainfall"
	"indash/pkg/rainfall/service"
)

type RainfallSvc struct {
	exec repository.Executor
	log  *zap.Logger
	now  func() time.Time
}

var _ service.RainfallService = (*RainfallSvc)(nil)

// NewRainfallService builds the service. now picks the current dekad and
// year; nil means time.Now.
func NewRainfallService(exec repository.Executor, log *zap.Logger, now func() time.Time) *RainfallSvc {
	if now == nil {
		now = time.Now
	}
	return &RainfallSvc{exec: exec, log: log.Named("rainfall"), now: now}
}

func predictionQuery(t location.Target, year int) string {
	return fmt.Sprintf("SELECT * FROM %s WHERE %s = %s AND TAHUN = %s",
		t.Table, t.Column, repository.Quote(t.ID), repository.Quote(fmt.Sprint(year)))
}

func normalQuery(t location.Target) string {
	return fmt.Sprintf("SELECT * FROM %s WHERE %s = %s", t.Table, t.Column, repository.Quote(t.ID))
}

func (s *RainfallSvc) Outlook(ctx context.Context, id string) (*entities.RainfallSeries, entities.Availability) {
	if err := location.Validate(id); err != nil {
		return nil, entities.InvalidLocation(id)
	}
	info := location.Resolve(id)
	predTarget, normTarget, ok := info.Rainfall()
	if !ok {
		return nil, entities.Availability{
			Reason:  entities.ReasonNoCoverage,
			Message: fmt.Sprintf("level %s has no rainfall outlook", info.Level),
		}
	}
	now := s.now()
	year, start := now.Year(), calendar.DekadOf(now)

	var pred, norm *repository.Response
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		pred, err = s.exec.Execute(gctx, predictionQuery(predTarget, year), repository.SourcePlanning)
		return err
	})
	g.Go(func() (err error) {
		norm, err = s.exec.Execute(gctx, normalQuery(normTarget), repository.SourcePlanning)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("rainfall fetch failed", zap.String("id", id), zap.Error(err))
		return nil, entities.NetworkError(err)
	}

	predRow, hasPred := pred.First()
	normRow, hasNorm := norm.First()
	if !hasPred || !hasNorm {
		s.log.Debug("rainfall rows missing", zap.String("id", id),
			zap.Bool("prediction", hasPred), zap.Bool("normal", hasNorm))
		return nil, entities.Availability{
			Reason:  entities.ReasonNoDataForPeriod,
			Message: "rainfall data is not available for this location",
			Details: fmt.Sprintf("%s needs rows in %s for %d and %s", id, predTarget.Table, year, normTarget.Table),
			Year:    year,
		}
	}
	series := rainfall.Series(id, info.Level, year, start, predRow, normRow)
	return series, entities.Available(fmt.Sprintf("%d dekads from %s", rainfall.WindowLength, calendar.Label(start)))
}
