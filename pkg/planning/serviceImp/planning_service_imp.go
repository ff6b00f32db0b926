package serviceImp

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"indash/entities"
	"indash/pkg/location"
	"indash/pkg/planning"
	"indash/pkg/planning/service"
	"indash/pkg/query/repository"
)

type productivityLookup interface {
	Get(ctx context.Context, locationID string) *entities.CropProductivity
}

type PlanningSvc struct {
	exec     repository.Executor
	provitas productivityLookup
	log      *zap.Logger
}

var _ service.PlanningService = (*PlanningSvc)(nil)

// NewPlanningService wires the planning source. provitas may be nil, in
// which case row-embedded or default productivity is used.
func NewPlanningService(exec repository.Executor, provitas productivityLookup, log *zap.Logger) *PlanningSvc {
	return &PlanningSvc{exec: exec, provitas: provitas, log: log.Named("planning")}
}

// recordQuery selects one row of t. Village and parcel tables take their
// name from t2_admin.
func recordQuery(t location.Target, period *entities.Period) string {
	var b strings.Builder
	col, alias := t.Column, ""
	if t.JoinAdminName {
		alias = "k."
		fmt.Fprintf(&b, "SELECT k.*, a.NAMA AS NAMA_ADMIN FROM %s k LEFT JOIN t2_admin a ON k.%s = a.ID_ADMIN", t.Table, col)
	} else {
		fmt.Fprintf(&b, "SELECT * FROM %s", t.Table)
	}
	fmt.Fprintf(&b, " WHERE %s%s = %s", alias, col, repository.Quote(t.ID))
	if period != nil {
		fmt.Fprintf(&b, " AND %sTAHUN = %s AND %sSEA = %s",
			alias, repository.Quote(period.YearString()), alias, repository.Quote(period.SeasonString()))
	} else {
		fmt.Fprintf(&b, " ORDER BY %sTAHUN DESC, %sSEA DESC", alias, alias)
	}
	b.WriteString(" LIMIT 1")
	return b.String()
}

func (s *PlanningSvc) Record(ctx context.Context, info location.Info, period *entities.Period) (*entities.PlanningRecord, error) {
	resp, err := s.exec.Execute(ctx, recordQuery(info.Planning(), period), repository.SourcePlanning)
	if err != nil {
		return nil, err
	}
	row, ok := resp.First()
	if !ok {
		return nil, nil
	}
	rec := planning.Decode(info.Level, row)
	return &rec, nil
}

func (s *PlanningSvc) Display(ctx context.Context, id string, period entities.Period) (*entities.PlanningDisplay, entities.Availability) {
	if err := location.Validate(id); err != nil {
		return nil, entities.InvalidLocation(id)
	}
	info := location.Resolve(id)

	var (
		rec    *entities.PlanningRecord
		lookup *entities.CropProductivity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rec, err = s.Record(gctx, info, &period)
		return err
	})
	if info.Level != entities.LevelNational && s.provitas != nil {
		g.Go(func() error {
			lookup = s.provitas.Get(gctx, id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Warn("planning fetch failed", zap.String("id", id), zap.Error(err))
		return nil, entities.NetworkError(err)
	}
	if rec == nil {
		return nil, entities.NoDataForPeriod(info.Level, id, period)
	}
	d := planning.Transform(id, *rec, period, lookup)
	return d, entities.Available(fmt.Sprintf("%s %d", period.SeasonName(), period.Year))
}
