// Package rainfall builds the dekad rainfall outlook from the prediction and
// normal tables.
package rainfall

import (
	"indash/entities"
	"indash/pkg/calendar"
	"indash/pkg/query/repository"
)

// WindowLength is the number of dekads shown, starting at the current one.
const WindowLength = 9

// Series reads the window's dekad columns from the prediction and normal
// rows. A dekad past d36 wraps to d01 of the same rows; missing cells read
// as zero.
func Series(id string, level entities.Level, year, start int, prediction, normal repository.Row) *entities.RainfallSeries {
	s := &entities.RainfallSeries{
		LocationID: id,
		Level:      level,
		Year:       year,
		StartDekad: start,
	}
	for _, d := range calendar.Window(start, WindowLength) {
		key := calendar.Key(d)
		s.Keys = append(s.Keys, key)
		s.Labels = append(s.Labels, calendar.ShortLabel(d))
		s.Prediction = append(s.Prediction, prediction.Float(key))
		s.Normal = append(s.Normal, normal.Float(key))
	}
	return s
}
