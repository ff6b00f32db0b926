package service

import (
	"context"

	"indash/entities"
)

type DashboardService interface {
	// LoadReferencePeriod reads the latest planning period from the source
	// and makes it current. It never fails; the fallback is the wet season
	// of the current year.
	LoadReferencePeriod(ctx context.Context) entities.Period
	Period() entities.Period

	// OnLocationSelected derives every panel for id. The snapshot is only
	// published when no newer selection started meanwhile; applied reports
	// whether it was.
	OnLocationSelected(ctx context.Context, id string) (snap *entities.Snapshot, applied bool, err error)

	Snapshot() *entities.Snapshot
	Monitoring() (*entities.MonitoringDisplay, entities.Availability)
	Planning() (*entities.PlanningDisplay, entities.Availability)
	Irrigation() (*entities.IrrigationSchedule, entities.Availability)
	Summary() (*entities.Summary, entities.Availability)
	Rainfall() (*entities.RainfallSeries, entities.Availability)

	// LocationHierarchyLabel names id by its most specific known ancestor.
	LocationHierarchyLabel(ctx context.Context, id string) string
}
