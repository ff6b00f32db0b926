package entities

type SummaryMonitoring struct {
	TotalLBS             float64    `json:"totalLBS"`
	PhaseDistribution    PhaseAreas `json:"phaseDistribution"`
	TotalHarvestForecast float64    `json:"totalHarvestForecast"`
	TotalProduction      float64    `json:"totalProduction"`
}

type SummaryPlanning struct {
	TotalArea           float64    `json:"totalArea"`
	CropDistribution    CropValues `json:"cropDistribution"`
	EstimatedProduction float64    `json:"estimatedProduction"`
	PlantingStartDate   string     `json:"plantingStartDate,omitempty"`
}

type SummaryCombined struct {
	ProductivityAvg float64 `json:"productivityAvg"`
}

// SummaryData is the rollup for one administrative level.
type SummaryData struct {
	Level      Level             `json:"level"`
	Name       string            `json:"name"`
	ID         string            `json:"id"`
	Monitoring SummaryMonitoring `json:"siscrop"`
	Planning   SummaryPlanning   `json:"katam"`
	Combined   SummaryCombined   `json:"combined"`
}

// Summary is the multi-level rollup. Availability has an entry for every
// level that was requested; a level without rows keeps a nil data pointer.
type Summary struct {
	Village      *SummaryData           `json:"desa"`
	District     *SummaryData           `json:"kabupaten"`
	Province     *SummaryData           `json:"provinsi"`
	National     *SummaryData           `json:"nasional"`
	Availability map[Level]Availability `json:"availability"`
}

func (s *Summary) Get(l Level) *SummaryData {
	switch l {
	case LevelVillage:
		return s.Village
	case LevelDistrict:
		return s.District
	case LevelProvince:
		return s.Province
	case LevelNational:
		return s.National
	}
	return nil
}

func (s *Summary) Set(l Level, d *SummaryData) {
	switch l {
	case LevelVillage:
		s.Village = d
	case LevelDistrict:
		s.District = d
	case LevelProvince:
		s.Province = d
	case LevelNational:
		s.National = d
	}
}
