package service

import (
	"context"

	"indash/entities"
)

type SummaryService interface {
	// Aggregate rolls id up through its village, district, province and
	// the nation. A nil period takes each level's latest year and season.
	Aggregate(ctx context.Context, id string, period *entities.Period) (*entities.Summary, entities.Availability)
}
