package entities

import "strconv"

const (
	SeasonWet = 1 // MT1, Okt-Mar
	SeasonDry = 2 // MT2, Apr-Sep
)

// Period is the planting year and season the planning data is filtered by.
type Period struct {
	Year   int `json:"year"`
	Season int `json:"season"`
}

func (p Period) YearString() string   { return strconv.Itoa(p.Year) }
func (p Period) SeasonString() string { return strconv.Itoa(p.Season) }

func (p Period) SeasonName() string {
	if p.Season == SeasonWet {
		return "Musim Hujan (MT1)"
	}
	return "Musim Kemarau (MT2)"
}
