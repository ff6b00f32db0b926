package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"indash/entities"
	"indash/pkg/location"
)

func ids(infos []location.Info) []string {
	out := make([]string, len(infos))
	for i, in := range infos {
		out[i] = in.ID
	}
	return out
}

func TestChain(t *testing.T) {
	assert.Equal(t, []string{"1"}, ids(Chain("1")))
	assert.Equal(t, []string{"32", "1"}, ids(Chain("32")))
	assert.Equal(t, []string{"3201", "32", "1"}, ids(Chain("3201")))
	assert.Equal(t, []string{"3201", "32", "1"}, ids(Chain("320101")))
	assert.Equal(t, []string{"3201012001", "3201", "32", "1"}, ids(Chain("3201012001")))
	assert.Equal(t, []string{"3201012001", "3201", "32", "1"}, ids(Chain("3201012001001")))

	c := Chain("3201012001001")
	assert.Equal(t, entities.LevelVillage, c[0].Level)
	assert.Equal(t, entities.LevelNational, c[3].Level)
}

func TestCombine(t *testing.T) {
	mon := &entities.MonitoringRecord{LBS: 120, DataDate: "251130", X: [8]float64{0, 0, 10, 10, 10, 10, 20}}
	plan := &entities.PlanningRecord{
		Level: entities.LevelDistrict,
		Regional: &entities.RegionalPlanningRecord{
			Name: "BOGOR", LBS: 100, Pattern: "111", StartDekad: 28, EstimatedYield: 300,
		},
	}
	d := Combine(location.Resolve("3201"), mon, plan, entities.Period{Year: 2025, Season: 1})
	assert.Equal(t, "BOGOR", d.Name)
	assert.InDelta(t, 120, d.Monitoring.PhaseDistribution.Total(), 1e-9)
	assert.Greater(t, d.Monitoring.TotalHarvestForecast, 0.0)
	assert.Equal(t, 100.0, d.Planning.TotalArea)
	assert.Equal(t, 100.0, d.Planning.CropDistribution.Rice)
	assert.Equal(t, 300.0, d.Planning.EstimatedProduction)
	assert.Equal(t, "Awal Oktober", d.Planning.PlantingStartDate)
	assert.InDelta(t, 300/d.Monitoring.TotalHarvestForecast, d.Combined.ProductivityAvg, 1e-9)
}

func TestCombineMonitoringOnly(t *testing.T) {
	mon := &entities.MonitoringRecord{LBS: 50, X: [8]float64{0, 5, 5}}
	d := Combine(location.Resolve("32"), mon, nil, entities.Period{})
	assert.Equal(t, "Provinsi 32", d.Name)
	assert.Zero(t, d.Planning.TotalArea)
	assert.Zero(t, d.Combined.ProductivityAvg)
}

func TestCombineNationalExpectedProduction(t *testing.T) {
	plan := &entities.PlanningRecord{
		Level: entities.LevelNational,
		National: &entities.NationalPlanningRecord{
			Area:       entities.CropValues{Rice: 10, Corn: 5},
			Production: entities.CropValues{Rice: 52, Corn: 23},
		},
	}
	d := Combine(location.Resolve("1"), nil, plan, entities.Period{Year: 2025, Season: 1})
	assert.Equal(t, "Indonesia", d.Name)
	assert.Equal(t, 15.0, d.Planning.TotalArea)
	assert.Equal(t, 75.0, d.Planning.EstimatedProduction)
	assert.Empty(t, d.Planning.PlantingStartDate)
}
