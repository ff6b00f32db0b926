package service

import (
	"context"

	"indash/entities"
)

type RainfallService interface {
	// Outlook reads this year's dekad prediction and the normal for id over
	// the window starting at today's dekad. Both rows are required.
	Outlook(ctx context.Context, id string) (*entities.RainfallSeries, entities.Availability)
}
