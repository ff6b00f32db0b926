// Package irrigation converts water-deficit rows into a pump schedule and
// chart series.
package irrigation

import (
	"fmt"
	"math"
	"sort"

	"indash/entities"
	"indash/pkg/calendar"
	"indash/pkg/query/repository"
)

const (
	// DurationHours is the assumed daily pumping window.
	DurationHours = 10
	// PumpCapacity is one pump unit's output in L/s.
	PumpCapacity = 1.5
	// CriticalDeficit marks a period as critical above this many mm.
	CriticalDeficit = 100
)

// Debit is the flow needed to cover deficit mm in DurationHours, in L/s per ha.
func Debit(deficit float64) float64 {
	return deficit * 10 / (DurationHours * 3.6)
}

// PumpUnits is the number of pumps needed for deficit, at least one.
func PumpUnits(deficit float64) int {
	return max(1, int(math.Ceil(Debit(deficit)/PumpCapacity)))
}

// DecodeDasarian coerces one per-period row.
func DecodeDasarian(row repository.Row) entities.DasarianRecord {
	return entities.DasarianRecord{
		DSR:  row.Int("DSR"),
		DST:  row.Int("DST"),
		WTOT: row.Float("WTOT"),
		WRQ:  row.Float("WRQ"),
		IRR:  row.Float("IRR"),
		WDQ:  row.Float("WDQ"),
		MT:   row.Int("MT"),
		Crop: row.String("CROP"),
	}
}

type period struct {
	label              string
	wrq, wtot, deficit float64
}

func build(id string, level entities.Level, src entities.ScheduleSource, periods []period) *entities.IrrigationSchedule {
	s := &entities.IrrigationSchedule{
		LocationID: id,
		Level:      level,
		Source:     src,
		Chart: entities.ChartSeries{
			Labels:      make([]string, 0, len(periods)),
			Requirement: make([]float64, 0, len(periods)),
			Available:   make([]float64, 0, len(periods)),
			Deficit:     make([]float64, 0, len(periods)),
		},
		Rows:    []entities.ScheduleRow{},
		Summary: entities.ScheduleSummary{CriticalPeriods: []string{}},
	}
	for _, p := range periods {
		s.Chart.Labels = append(s.Chart.Labels, p.label)
		s.Chart.Requirement = append(s.Chart.Requirement, p.wrq)
		s.Chart.Available = append(s.Chart.Available, p.wtot)
		s.Chart.Deficit = append(s.Chart.Deficit, p.deficit)
		if p.deficit <= 0 {
			continue
		}
		s.Rows = append(s.Rows, entities.ScheduleRow{
			Period:        p.label,
			Deficit:       p.deficit,
			Debit:         Debit(p.deficit),
			DurationHours: DurationHours,
			PumpUnits:     PumpUnits(p.deficit),
		})
		s.Summary.TotalDeficit += p.deficit
		s.Summary.DeficitCount++
		if p.deficit > CriticalDeficit {
			s.Summary.CriticalPeriods = append(s.Summary.CriticalPeriods, p.label)
		}
	}
	return s
}

// FromDasarian schedules per-period rows in DSR order, at most one year of
// periods. Every period appears in the chart; only deficits become rows.
func FromDasarian(id string, level entities.Level, recs []entities.DasarianRecord) *entities.IrrigationSchedule {
	sorted := append([]entities.DasarianRecord(nil), recs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DSR < sorted[j].DSR })
	if len(sorted) > calendar.DekadsPerYear {
		sorted = sorted[:calendar.DekadsPerYear]
	}
	periods := make([]period, len(sorted))
	for i, r := range sorted {
		periods[i] = period{
			label:   calendar.ShortLabel(calendar.Wrap(r.DST, r.DSR)),
			wrq:     r.WRQ,
			wtot:    r.WTOT,
			deficit: r.IRR,
		}
	}
	return build(id, level, entities.ScheduleDasarian, periods)
}

// FromSeasons schedules the three planting windows MT1..MT3.
func FromSeasons(id string, level entities.Level, w [3]entities.SeasonWater) *entities.IrrigationSchedule {
	periods := make([]period, len(w))
	for i, s := range w {
		periods[i] = period{
			label:   fmt.Sprintf("MT%d", i+1),
			wrq:     s.Requirement,
			wtot:    s.Available,
			deficit: s.Deficit,
		}
	}
	return build(id, level, entities.ScheduleSeason, periods)
}
