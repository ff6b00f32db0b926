package service

import (
	"context"

	"indash/entities"
)

type IrrigationService interface {
	// Schedule builds the irrigation panel for id in period, from per-dekad
	// rows where the level has them and from season aggregates otherwise.
	Schedule(ctx context.Context, id string, period entities.Period) (*entities.IrrigationSchedule, entities.Availability)
}
