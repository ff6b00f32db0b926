package serviceImp

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"indash/entities"
	"indash/pkg/location"
	"indash/pkg/monitoring"
	"indash/pkg/monitoring/service"
	"indash/pkg/query/repository"
)

type MonitoringSvc struct {
	exec repository.Executor
	log  *zap.Logger
	now  func() time.Time
}

var _ service.MonitoringService = (*MonitoringSvc)(nil)

// NewMonitoringService builds the service. now supplies the clock in the
// dashboard timezone.
func NewMonitoringService(exec repository.Executor, log *zap.Logger, now func() time.Time) *MonitoringSvc {
	if now == nil {
		now = time.Now
	}
	return &MonitoringSvc{exec: exec, log: log.Named("monitoring"), now: now}
}

func latestQuery(t location.Target) string {
	return fmt.Sprintf(
		"SELECT id_bps, x0, x1, x2, x3, x4, x5, x6, x7, data_date, lbs, provitas_bps, provitas_sc FROM %s WHERE %s = %s ORDER BY data_date DESC LIMIT 1",
		t.Table, t.Column, repository.Quote(t.ID))
}

func (s *MonitoringSvc) Latest(ctx context.Context, info location.Info) (*entities.MonitoringRecord, error) {
	resp, err := s.exec.Execute(ctx, latestQuery(info.Monitoring()), repository.SourceMonitoring)
	if err != nil {
		return nil, err
	}
	row, ok := resp.First()
	if !ok {
		return nil, nil
	}
	r := monitoring.Decode(row)
	return &r, nil
}

func (s *MonitoringSvc) Display(ctx context.Context, id string) (*entities.MonitoringDisplay, entities.Availability) {
	if err := location.Validate(id); err != nil {
		return nil, entities.InvalidLocation(id)
	}
	info := location.Resolve(id)
	rec, err := s.Latest(ctx, info)
	if err != nil {
		s.log.Warn("monitoring fetch failed", zap.String("id", id), zap.Error(err))
		return nil, entities.NetworkError(err)
	}
	if rec == nil {
		return nil, entities.Availability{
			Reason:  entities.ReasonNoDataForPeriod,
			Message: fmt.Sprintf("no monitoring data for %s %s", info.Level, id),
			Details: "table " + info.Monitoring().Table + " has no row for this location",
		}
	}
	d := monitoring.Display(id, info.Level, *rec, s.now())
	return d, entities.Available("data date " + d.DataDate.Formatted)
}
