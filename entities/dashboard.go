package entities

import "time"

// Snapshot is everything derived for one location selection.
type Snapshot struct {
	Generation  uint64    `json:"generation"`
	SelectionID string    `json:"selectionId"`
	LocationID  string    `json:"locationId"`
	Level       Level     `json:"level"`
	Period      Period    `json:"period"`
	ResolvedAt  time.Time `json:"resolvedAt"`

	Monitoring             *MonitoringDisplay  `json:"monitoring"`
	MonitoringAvailability Availability        `json:"monitoringAvailability"`
	Planning               *PlanningDisplay    `json:"planning"`
	PlanningAvailability   Availability        `json:"planningAvailability"`
	Irrigation             *IrrigationSchedule `json:"irrigation"`
	IrrigationAvailability Availability        `json:"irrigationAvailability"`
	Summary                *Summary            `json:"summary"`
	SummaryAvailability    Availability        `json:"summaryAvailability"`
	Rainfall               *RainfallSeries     `json:"rainfall"`
	RainfallAvailability   Availability        `json:"rainfallAvailability"`
}
