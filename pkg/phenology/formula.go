// Package phenology turns a crop-monitoring row into phase areas, a
// four-month harvest forecast and a milled-grain production forecast.
package phenology

import (
	"strconv"
	"time"

	"indash/entities"
	"indash/pkg/calendar"
)

const (
	// DefaultProductivity is used when a row carries no productivity (ton/ha).
	DefaultProductivity = 5.0
	// Rendemen converts harvested dry paddy (GKG) to milled grain.
	Rendemen = 0.625
	// RealTimeWindow is how old a data date may be and still count as current.
	RealTimeWindow = 7 * 24 * time.Hour
	midMonthDay    = "15"
)

// Coefficients per forecast month over (x6, x5, x4, x3, x2) pairs. The
// mid-month set applies when the data date falls on the 15th, the
// end-of-month set otherwise.
var (
	midMonth = [4][5]float64{
		{0.2, 20.0 / 40, 0, 0, 0},
		{0, 20.0 / 40, 10.0 / 30, 0, 0},
		{0, 0, 20.0 / 30, 10.0 / 20, 0},
		{0, 0, 0, 10.0 / 20, 20.0 / 20},
	}
	endOfMonth = [4][5]float64{
		{0.25, 15.0 / 40, 0, 0, 0},
		{0, 25.0 / 40, 5.0 / 30, 0, 0},
		{0, 0, 25.0 / 30, 5.0 / 20, 0},
		{0, 0, 0, 15.0 / 20, 15.0 / 20},
	}
)

func phaseTotal(r entities.MonitoringRecord) float64 {
	return r.X[1] + r.X[2] + r.X[3] + r.X[4] + r.X[5] + r.X[6]
}

// PhaseAreas allocates LBS across x1..x6 proportionally. All zero when the
// counts sum to zero.
func PhaseAreas(r entities.MonitoringRecord) entities.PhaseAreas {
	total := phaseTotal(r)
	if total == 0 {
		return entities.PhaseAreas{}
	}
	f := r.LBS / total
	return entities.PhaseAreas{
		Water:       r.X[1] * f,
		Vegetative1: r.X[2] * f,
		Vegetative2: r.X[3] * f,
		Generative1: r.X[4] * f,
		Generative2: r.X[5] * f,
		Fallow:      r.X[6] * f,
	}
}

// HarvestForecast estimates harvest area for the next four months. The
// weight set is chosen by whether the day digits of the data date are "15".
func HarvestForecast(r entities.MonitoringRecord) entities.HarvestForecast {
	total := phaseTotal(r)
	if total == 0 {
		return entities.HarvestForecast{}
	}
	w := endOfMonth
	if dayDigits(r.DataDate) == midMonthDay {
		w = midMonth
	}
	stages := [5]float64{r.X[6], r.X[5], r.X[4], r.X[3], r.X[2]}
	f := r.LBS / total
	var pn [4]float64
	for m := range pn {
		for s, c := range w[m] {
			pn[m] += c * stages[s]
		}
		pn[m] *= f
	}
	return entities.HarvestForecast{Month1: pn[0], Month2: pn[1], Month3: pn[2], Month4: pn[3]}
}

// Productivity prefers the system-derived figure, then the external
// benchmark, then fallback.
func Productivity(r entities.MonitoringRecord, fallback float64) float64 {
	switch {
	case r.ProvitasSC > 0:
		return r.ProvitasSC
	case r.ProvitasBPS > 0:
		return r.ProvitasBPS
	}
	return fallback
}

// Production converts harvest area to tonnage: area x productivity x rendemen.
func Production(h entities.HarvestForecast, productivity, rendemen float64) entities.ProductionForecast {
	k := productivity * rendemen
	p := entities.ProductionForecast{
		Month1: h.Month1 * k,
		Month2: h.Month2 * k,
		Month3: h.Month3 * k,
		Month4: h.Month4 * k,
	}
	p.Total = p.Month1 + p.Month2 + p.Month3 + p.Month4
	return p
}

// ParseDate decodes YYMMDD with a +2000 year offset. Missing or non-numeric
// parts decode as 0; the parts are not calendar-validated.
func ParseDate(code string) entities.DataDate {
	return entities.DataDate{
		Year:  2000 + digits(code, 0),
		Month: digits(code, 2),
		Day:   digits(code, 4),
	}
}

// Describe fills the formatted date and real-time flag relative to now.
// Out-of-range parts roll over (month 13 is January of the next year). A date
// missing its month or day is left unformatted and never real-time.
func Describe(d entities.DataDate, now time.Time) entities.DataDate {
	if d.Month == 0 || d.Day == 0 {
		d.Formatted = ""
		d.IsRealTime = false
		return d
	}
	loc := now.Location()
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
	d.Formatted = calendar.FormatDate(t)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	d.IsRealTime = today.Sub(t) < RealTimeWindow
	return d
}

// HarvestMonths names the four forecast months, the first being the month
// after the data date. Without a month they read "Bulan 1" to "Bulan 4".
func HarvestMonths(d entities.DataDate) [4]string {
	var out [4]string
	for i := range out {
		if d.Month == 0 {
			out[i] = "Bulan " + strconv.Itoa(i+1)
			continue
		}
		out[i] = calendar.MonthName(d.Month + i + 1)
	}
	return out
}

// Analysis bundles every formula output for one row.
type Analysis struct {
	PhaseAreas   entities.PhaseAreas
	Harvest      entities.HarvestForecast
	Productivity float64
	Production   entities.ProductionForecast
	Date         entities.DataDate
}

func Analyze(r entities.MonitoringRecord) Analysis {
	a := Analysis{
		PhaseAreas:   PhaseAreas(r),
		Harvest:      HarvestForecast(r),
		Productivity: Productivity(r, DefaultProductivity),
		Date:         ParseDate(r.DataDate),
	}
	a.Production = Production(a.Harvest, a.Productivity, Rendemen)
	return a
}

func dayDigits(code string) string {
	if len(code) < 6 {
		return ""
	}
	return code[4:6]
}

func digits(code string, at int) int {
	if len(code) < at+2 {
		return 0
	}
	n, err := strconv.Atoi(code[at : at+2])
	if err != nil {
		return 0
	}
	return n
}
