package serviceImp

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"indash/entities"
	"indash/pkg/irrigation"
	"indash/pkg/irrigation/service"
	"indash/pkg/location"
	"indash/pkg/planning"
	"indash/pkg/query/repository"
)

type IrrigationSvc struct {
	exec repository.Executor
	log  *zap.Logger
}

var _ service.IrrigationService = (*IrrigationSvc)(nil)

func NewIrrigationService(exec repository.Executor, log *zap.Logger) *IrrigationSvc {
	return &IrrigationSvc{exec: exec, log: log.Named("irrigation")}
}

func periodFilter(p entities.Period) string {
	return fmt.Sprintf("TAHUN = %s AND SEA = %s", repository.Quote(p.YearString()), repository.Quote(p.SeasonString()))
}

// dasarianQuery reads the first planting window (MT = 1) period by period.
func dasarianQuery(t location.Target, p entities.Period) string {
	return fmt.Sprintf("SELECT DSR, DST, WTOT, WRQ, IRR, WDQ, MT, CROP FROM %s WHERE %s = %s AND %s AND MT = 1 ORDER BY DSR",
		t.Table, t.Column, repository.Quote(t.ID), periodFilter(p))
}

func seasonQuery(t location.Target, p entities.Period) string {
	return fmt.Sprintf("SELECT MT1_WRQ, MT1_WTOT, MT1_IRR, MT1_WDQ, MT2_WRQ, MT2_WTOT, MT2_IRR, MT2_WDQ, MT3_WRQ, MT3_WTOT, MT3_IRR, MT3_WDQ FROM %s WHERE %s = %s AND %s LIMIT 1",
		t.Table, t.Column, repository.Quote(t.ID), periodFilter(p))
}

func (s *IrrigationSvc) Schedule(ctx context.Context, id string, period entities.Period) (*entities.IrrigationSchedule, entities.Availability) {
	if err := location.Validate(id); err != nil {
		return nil, entities.InvalidLocation(id)
	}
	info := location.Resolve(id)

	if t, ok := info.Irrigation(); ok {
		resp, err := s.exec.Execute(ctx, dasarianQuery(t, period), repository.SourceOptimization)
		if err != nil {
			s.log.Warn("per-dekad fetch failed", zap.String("id", id), zap.Error(err))
			return nil, entities.NetworkError(err)
		}
		if len(resp.Data) > 0 {
			recs := make([]entities.DasarianRecord, len(resp.Data))
			for i, row := range resp.Data {
				recs[i] = irrigation.DecodeDasarian(row)
			}
			sch := irrigation.FromDasarian(id, info.Level, recs)
			return sch, entities.Available(fmt.Sprintf("%d dekad periods", len(recs)))
		}
		s.log.Debug("no per-dekad rows, using season aggregates", zap.String("id", id))
	}

	resp, err := s.exec.Execute(ctx, seasonQuery(info.Planning(), period), repository.SourcePlanning)
	if err != nil {
		s.log.Warn("season fetch failed", zap.String("id", id), zap.Error(err))
		return nil, entities.NetworkError(err)
	}
	row, ok := resp.First()
	if !ok {
		return nil, entities.NoDataForPeriod(info.Level, id, period)
	}
	sch := irrigation.FromSeasons(id, info.Level, planning.DecodeWater(row))
	return sch, entities.Available("season aggregates MT1-MT3")
}
