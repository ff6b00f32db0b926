package service

import (
	"context"

	"indash/entities"
	"indash/pkg/location"
)

type MonitoringService interface {
	// Latest fetches the most recent row for the location; nil when the
	// table has none.
	Latest(ctx context.Context, info location.Info) (*entities.MonitoringRecord, error)
	// Display builds the monitoring panel for id.
	Display(ctx context.Context, id string) (*entities.MonitoringDisplay, entities.Availability)
}
