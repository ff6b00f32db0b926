package service

import (
	"context"

	"indash/entities"
	"indash/pkg/location"
)

type PlanningService interface {
	// Record fetches the planning row for the location. A nil period picks
	// the most recent year and season on file. Nil when nothing matches.
	Record(ctx context.Context, info location.Info, period *entities.Period) (*entities.PlanningRecord, error)
	// Display builds the planning panel for id in period.
	Display(ctx context.Context, id string, period entities.Period) (*entities.PlanningDisplay, entities.Availability)
}
