package entities

// DasarianRecord is one ten-day period row of a per-period planning table.
// DST is the planting start dekad, DSR the offset from it (both 1-based).
type DasarianRecord struct {
	DSR  int
	DST  int
	WTOT float64
	WRQ  float64
	IRR  float64
	WDQ  float64
	MT   int
	Crop string
}

type ScheduleSource string

const (
	ScheduleDasarian ScheduleSource = "dasarian"
	ScheduleSeason   ScheduleSource = "musim"
)

type ScheduleRow struct {
	Period        string  `json:"jadwal"`
	Deficit       float64 `json:"deficit"`
	Debit         float64 `json:"debit"`
	DurationHours float64 `json:"durasi"`
	PumpUnits     int     `json:"pompa"`
}

// ChartSeries holds parallel arrays, one entry per period including zero
// deficit periods.
type ChartSeries struct {
	Labels      []string  `json:"labels"`
	Requirement []float64 `json:"wrq"`
	Available   []float64 `json:"wtot"`
	Deficit     []float64 `json:"irr"`
}

type ScheduleSummary struct {
	TotalDeficit    float64  `json:"totalDeficit"`
	DeficitCount    int      `json:"deficitCount"`
	CriticalPeriods []string `json:"criticalPeriods"`
}

// IrrigationSchedule is the irrigation panel model.
type IrrigationSchedule struct {
	LocationID string          `json:"locationId"`
	Level      Level           `json:"level"`
	Source     ScheduleSource  `json:"source"`
	Chart      ChartSeries     `json:"chartData"`
	Rows       []ScheduleRow   `json:"tableData"`
	Summary    ScheduleSummary `json:"summary"`
}
