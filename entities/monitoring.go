package entities

// MonitoringRecord is one crop-monitoring row after coercion. X holds the
// raster phase counts x0..x7; only x1..x6 take part in the formulas.
type MonitoringRecord struct {
	IDBPS       string     `json:"id_bps"`
	X           [8]float64 `json:"x"`
	LBS         float64    `json:"lbs"`
	DataDate    string     `json:"data_date"`
	ProvitasBPS float64    `json:"provitas_bps"`
	ProvitasSC  float64    `json:"provitas_sc"`
}

// PhaseAreas are hectares per growth phase. They sum to LBS when any phase
// count is nonzero.
type PhaseAreas struct {
	Water       float64 `json:"air"`
	Vegetative1 float64 `json:"vegetatif1"`
	Vegetative2 float64 `json:"vegetatif2"`
	Generative1 float64 `json:"generatif1"`
	Generative2 float64 `json:"generatif2"`
	Fallow      float64 `json:"bera"`
}

func (p PhaseAreas) Total() float64 {
	return p.Water + p.Vegetative1 + p.Vegetative2 + p.Generative1 + p.Generative2 + p.Fallow
}

// Rice is the area currently under a growing rice crop (x2..x5).
func (p PhaseAreas) Rice() float64 {
	return p.Vegetative1 + p.Vegetative2 + p.Generative1 + p.Generative2
}

// HarvestForecast is the expected harvest area (ha) for the next four months.
type HarvestForecast struct {
	Month1 float64 `json:"pn1"`
	Month2 float64 `json:"pn2"`
	Month3 float64 `json:"pn3"`
	Month4 float64 `json:"pn4"`
}

func (h HarvestForecast) Total() float64 {
	return h.Month1 + h.Month2 + h.Month3 + h.Month4
}

// ProductionForecast is milled-grain tonnage per forecast month.
type ProductionForecast struct {
	Month1 float64 `json:"prod1"`
	Month2 float64 `json:"prod2"`
	Month3 float64 `json:"prod3"`
	Month4 float64 `json:"prod4"`
	Total  float64 `json:"total"`
}

// DataDate is a decoded YYMMDD code. Parts are not calendar-validated.
type DataDate struct {
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Day        int    `json:"day"`
	Formatted  string `json:"formatted"`
	IsRealTime bool   `json:"isRealTime"`
}

type MonitoringProductivity struct {
	BPS     *float64 `json:"bps"`
	SisCrop *float64 `json:"siscrop"`
	Used    float64  `json:"used"`
}

type MonitoringMetrics struct {
	Fallow float64 `json:"bera"`
	Rice   float64 `json:"padi"`
	Water  float64 `json:"air"`
}

// MonitoringDisplay is the crop-monitoring panel model. HarvestMonths names
// the months of Harvest and Production in order.
type MonitoringDisplay struct {
	LocationID    string                 `json:"locationId"`
	Level         Level                  `json:"level"`
	DataDate      DataDate               `json:"dataDate"`
	TotalLBS      float64                `json:"totalLbs"`
	PhaseAreas    PhaseAreas             `json:"phaseAreas"`
	Harvest       HarvestForecast        `json:"harvest"`
	HarvestMonths [4]string              `json:"harvestMonths"`
	Production    ProductionForecast     `json:"production"`
	Productivity  MonitoringProductivity `json:"productivity"`
	Metrics       MonitoringMetrics      `json:"metrics"`
}
