package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indash/entities"
)

func TestIrrigationWorkbook(t *testing.T) {
	s := &entities.IrrigationSchedule{
		Chart: entities.ChartSeries{
			Labels:      []string{"Awal Okt", "Tengah Okt"},
			Requirement: []float64{60, 55},
			Available:   []float64{30, 55},
			Deficit:     []float64{30, 0},
		},
		Rows:    []entities.ScheduleRow{{Period: "Awal Okt", Deficit: 30, Debit: 3.47, DurationHours: 10, PumpUnits: 3}},
		Summary: entities.ScheduleSummary{TotalDeficit: 30, DeficitCount: 1},
	}
	sum := &entities.Summary{
		District: &entities.SummaryData{Level: entities.LevelDistrict, ID: "3201", Name: "BOGOR"},
		Availability: map[entities.Level]entities.Availability{
			entities.LevelDistrict: entities.Available("planning only"),
			entities.LevelProvince: entities.NetworkError(nil),
			entities.LevelNational: entities.Available("monitoring only"),
		},
	}

	f, err := IrrigationWorkbook(s, sum)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSchedule, SheetChart, SheetSummary}, f.GetSheetList())

	rows, err := f.GetRows(SheetSchedule)
	require.NoError(t, err)
	assert.Equal(t, []string{"Awal Okt", "30", "3.47", "10", "3"}, rows[1])
	assert.Equal(t, []string{"Total defisit", "30"}, rows[3])

	chart, err := f.GetRows(SheetChart)
	require.NoError(t, err)
	assert.Len(t, chart, 3)
	assert.Equal(t, "Tengah Okt", chart[2][0])

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, []string{"kabu", "3201", "BOGOR"}, summary[1][:3])
	assert.Equal(t, "prov", summary[2][0])
	assert.Equal(t, "failed to load data", summary[2][9])
	// national has availability but no data row
	assert.Equal(t, "nasional", summary[3][0])
}

func TestIrrigationWorkbookEmpty(t *testing.T) {
	f, err := IrrigationWorkbook(nil, nil)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
