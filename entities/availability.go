package entities

import "fmt"

type AvailabilityReason string

const (
	ReasonNoCoverage      AvailabilityReason = "no_coverage"
	ReasonNoDataForPeriod AvailabilityReason = "no_data_for_period"
	ReasonNetworkError    AvailabilityReason = "network_error"
	ReasonInvalidLocation AvailabilityReason = "invalid_location"
)

// Availability tags a derived model with why it is (or is not) present.
type Availability struct {
	Available bool               `json:"available"`
	Reason    AvailabilityReason `json:"reason,omitempty"`
	Message   string             `json:"message"`
	Details   string             `json:"details,omitempty"`
	Year      int                `json:"year,omitempty"`
	Season    int                `json:"season,omitempty"`
}

func Available(details string) Availability {
	return Availability{Available: true, Message: "data available", Details: details}
}

func NoDataForPeriod(level Level, id string, p Period) Availability {
	return Availability{
		Reason:  ReasonNoDataForPeriod,
		Message: fmt.Sprintf("no data for %s %s", level, id),
		Details: fmt.Sprintf("no row for year %d, %s", p.Year, p.SeasonName()),
		Year:    p.Year,
		Season:  p.Season,
	}
}

func NoCoverage(level Level) Availability {
	return Availability{
		Reason:  ReasonNoCoverage,
		Message: fmt.Sprintf("level %s is outside planning coverage", level),
	}
}

func NetworkError(err error) Availability {
	a := Availability{Reason: ReasonNetworkError, Message: "failed to load data"}
	if err != nil {
		a.Details = err.Error()
	}
	return a
}

func InvalidLocation(id string) Availability {
	return Availability{
		Reason:  ReasonInvalidLocation,
		Message: "invalid location",
		Details: fmt.Sprintf("location id %q is not a valid administrative code", id),
	}
}
