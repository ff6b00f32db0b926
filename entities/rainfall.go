package entities

// RainfallSeries is the dekad rainfall outlook for one location: the
// predicted and the climatological normal rainfall in mm, one entry per
// dekad of the window starting at the current dekad.
type RainfallSeries struct {
	LocationID string    `json:"locationId"`
	Level      Level     `json:"level"`
	Year       int       `json:"year"`
	StartDekad int       `json:"startDekad"`
	Keys       []string  `json:"keys"`
	Labels     []string  `json:"labels"`
	Prediction []float64 `json:"prediction"`
	Normal     []float64 `json:"normal"`
}
