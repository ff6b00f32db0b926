// Package monitoring decodes crop-monitoring rows and builds the phenology
// panel model.
package monitoring

import (
	"strconv"
	"time"

	"indash/entities"
	"indash/pkg/phenology"
	"indash/pkg/query/repository"
)

// Decode coerces a raw monitoring row once; missing or non-numeric fields
// become 0.
func Decode(row repository.Row) entities.MonitoringRecord {
	r := entities.MonitoringRecord{
		IDBPS:       row.String("id_bps", "id_admin"),
		LBS:         row.Float("lbs"),
		DataDate:    row.String("data_date"),
		ProvitasBPS: row.Float("provitas_bps"),
		ProvitasSC:  row.Float("provitas_sc"),
	}
	for i := range r.X {
		r.X[i] = row.Float("x" + strconv.Itoa(i))
	}
	return r
}

// Display runs the phenology formulas over r. now anchors the real-time
// flag of the data date.
func Display(id string, level entities.Level, r entities.MonitoringRecord, now time.Time) *entities.MonitoringDisplay {
	a := phenology.Analyze(r)
	return &entities.MonitoringDisplay{
		LocationID:    id,
		Level:         level,
		DataDate:      phenology.Describe(a.Date, now),
		TotalLBS:      r.LBS,
		PhaseAreas:    a.PhaseAreas,
		Harvest:       a.Harvest,
		HarvestMonths: phenology.HarvestMonths(a.Date),
		Production:    a.Production,
		Productivity: entities.MonitoringProductivity{
			BPS:     positive(r.ProvitasBPS),
			SisCrop: positive(r.ProvitasSC),
			Used:    a.Productivity,
		},
		Metrics: entities.MonitoringMetrics{
			Fallow: a.PhaseAreas.Fallow,
			Rice:   a.PhaseAreas.Rice(),
			Water:  a.PhaseAreas.Water,
		},
	}
}

func positive(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}
