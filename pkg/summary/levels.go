// Package summary combines the phenology and planning figures of one
// administrative level into a rollup row.
package summary

import (
	"indash/entities"
	"indash/pkg/calendar"
	"indash/pkg/location"
	"indash/pkg/phenology"
	"indash/pkg/planning"
)

// Chain lists the levels summarized for id, most specific first. The
// national id yields only the nation; other ids add their province and
// district, and village-length ids also their village.
func Chain(id string) []location.Info {
	if id == location.NationalID {
		return []location.Info{location.Resolve(location.NationalID)}
	}
	var out []location.Info
	if len(id) >= location.VillageIDLength {
		out = append(out, location.Resolve(id[:location.VillageIDLength]))
	}
	if len(id) >= 4 {
		out = append(out, location.Resolve(id[:4]))
	}
	if len(id) >= 2 {
		out = append(out, location.Resolve(id[:2]))
	}
	return append(out, location.Resolve(location.NationalID))
}

// GenericName labels a level without a name column.
func GenericName(info location.Info) string {
	switch info.Level {
	case entities.LevelNational:
		return planning.DefaultName
	case entities.LevelProvince:
		return "Provinsi " + info.ID
	case entities.LevelDistrict:
		return "Kabupaten " + info.ID
	case entities.LevelSubDistrict:
		return "Kecamatan " + info.ID
	}
	return "Desa " + info.ID
}

// Combine builds one level's rollup. Either record may be nil; period is
// the period the planning record was selected for.
func Combine(info location.Info, mon *entities.MonitoringRecord, plan *entities.PlanningRecord, period entities.Period) *entities.SummaryData {
	d := &entities.SummaryData{Level: info.Level, ID: info.ID, Name: GenericName(info)}

	if mon != nil {
		a := phenology.Analyze(*mon)
		d.Monitoring = entities.SummaryMonitoring{
			TotalLBS:             mon.LBS,
			PhaseDistribution:    a.PhaseAreas,
			TotalHarvestForecast: a.Harvest.Total(),
			TotalProduction:      a.Production.Total,
		}
	}

	if plan != nil {
		disp := planning.Transform(info.ID, *plan, period, nil)
		d.Planning = entities.SummaryPlanning{
			TotalArea:           disp.Crops.TotalArea,
			CropDistribution:    disp.Crops.Area,
			EstimatedProduction: disp.Production.Expected,
		}
		if disp.Name != "" {
			d.Name = disp.Name
		}
		if r := plan.Regional; r != nil {
			if r.EstimatedYield > 0 {
				d.Planning.EstimatedProduction = r.EstimatedYield
			}
			if r.StartDekad > 0 {
				d.Planning.PlantingStartDate = calendar.Label(r.StartDekad)
			}
		}
	}

	harvest, prod := d.Monitoring.TotalHarvestForecast, d.Planning.EstimatedProduction
	if harvest > 0 && prod > 0 {
		d.Combined.ProductivityAvg = prod / harvest
	}
	return d
}
