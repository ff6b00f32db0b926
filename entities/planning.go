package entities

type Crop string

const (
	CropRice    Crop = "padi"
	CropCorn    Crop = "jagung"
	CropSoybean Crop = "kedelai"
)

// Crops is the display order of the planned crops.
var Crops = []Crop{CropRice, CropCorn, CropSoybean}

func (c Crop) Label() string {
	switch c {
	case CropRice:
		return "Padi"
	case CropCorn:
		return "Jagung"
	case CropSoybean:
		return "Kedelai"
	}
	return string(c)
}

// CropValues holds one figure per crop.
type CropValues struct {
	Rice    float64 `json:"padi"`
	Corn    float64 `json:"jagung"`
	Soybean float64 `json:"kedelai"`
}

func (v CropValues) Get(c Crop) float64 {
	switch c {
	case CropRice:
		return v.Rice
	case CropCorn:
		return v.Corn
	case CropSoybean:
		return v.Soybean
	}
	return 0
}

func (v *CropValues) Set(c Crop, f float64) {
	switch c {
	case CropRice:
		v.Rice = f
	case CropCorn:
		v.Corn = f
	case CropSoybean:
		v.Soybean = f
	}
}

func (v CropValues) Total() float64 { return v.Rice + v.Corn + v.Soybean }

// CropProductivity is a district benchmark in ton/ha.
type CropProductivity = CropValues

// SeasonWater is one planting window's water balance in mm.
type SeasonWater struct {
	Requirement float64 `json:"wrq"`
	Available   float64 `json:"wtot"`
	Deficit     float64 `json:"irr"`
	Ratio       float64 `json:"wdq"`
}

// NationalPlanningRecord is a row of the pre-aggregated national table.
type NationalPlanningRecord struct {
	Name       string
	Year       int
	Season     int
	Area       CropValues // *_ha
	Production CropValues // *_ton
	Seed       CropValues // *_BENIH_kg
	Urea       CropValues // *_UREA_m_ton
	NPK        CropValues // *_NPK_ton
	FallowArea float64
	LBS        float64
	RiceIndex  float64
	Water      [3]SeasonWater
}

// RegionalPlanningRecord is a row of any sub-national planning table.
type RegionalPlanningRecord struct {
	Name           string
	Year           int
	Season         int
	StartDekad     int
	LBS            float64
	Pattern        string
	ExplicitArea   *CropValues // LUAS_* columns when the table carries them
	Productivity   CropValues  // row-embedded PADI/JAGUNG/KEDELAI
	Water          [3]SeasonWater
	PestRisk       PestRisk
	PestLoss       float64
	WaterLossPct   float64
	PestLossPct    float64
	EstimatedYield float64 // PRODUKSI_ESTIMASI
}

type PestRisk struct {
	Planthopper float64
	Rat         float64
	Blast       float64
	Blight      float64
}

// PlanningRecord carries exactly one of the two schema shapes.
type PlanningRecord struct {
	Level    Level
	National *NationalPlanningRecord
	Regional *RegionalPlanningRecord
}

type WaterStatus string

const (
	WaterSufficient   WaterStatus = "sufficient"
	WaterLightDeficit WaterStatus = "light-deficit"
	WaterSevere       WaterStatus = "severe-deficit"
)

type PlantingSchedule struct {
	Season     string `json:"season"`
	Year       int    `json:"year"`
	StartDekad int    `json:"startDekad"`
	StartDate  string `json:"startDate"`
}

type CropPlan struct {
	Pattern     string     `json:"pattern"`
	Recommended []string   `json:"recommended"`
	TotalArea   float64    `json:"totalArea"`
	FallowArea  float64    `json:"fallowArea,omitempty"`
	FloodedArea float64    `json:"floodedArea,omitempty"`
	Area        CropValues `json:"area"`
}

type Fertilizer struct {
	Urea  float64 `json:"urea"`
	NPK   float64 `json:"npk"`
	Total float64 `json:"total"`
}

type Inputs struct {
	Seeds      CropValues `json:"seeds"`
	SeedTotal  float64    `json:"seedTotal"`
	Fertilizer Fertilizer `json:"fertilizer"`
}

type WaterBalance struct {
	Requirement   float64        `json:"requirement"`
	Available     float64        `json:"available"`
	Deficit       float64        `json:"deficit"`
	RequirementM3 float64        `json:"requirementM3"`
	AvailableM3   float64        `json:"availableM3"`
	DeficitM3     float64        `json:"deficitM3"`
	WDQ           float64        `json:"wdq"`
	Ratio         float64        `json:"ratio"`
	Status        WaterStatus    `json:"status"`
	Seasons       [3]SeasonWater `json:"seasons"`
}

type PestAlert struct {
	Name string  `json:"name"`
	Risk float64 `json:"risk"`
}

type CropProduction struct {
	Area         float64 `json:"area"`
	Productivity float64 `json:"productivity"`
	Production   float64 `json:"production"`
}

type ProductionCascade struct {
	Potential     float64                 `json:"potential"`
	PestLoss      float64                 `json:"pestLoss"`
	WaterLoss     float64                 `json:"waterLoss"`
	PestLossPct   float64                 `json:"pestLossPct"`
	WaterLossPct  float64                 `json:"waterLossPct"`
	Expected      float64                 `json:"expected"`
	EstimatedLoss float64                 `json:"estimatedLoss,omitempty"`
	ByCrop        map[Crop]CropProduction `json:"byCrop"`
}

// PlanningDisplay is the planting-plan panel model.
type PlanningDisplay struct {
	LocationID string            `json:"locationId"`
	Level      Level             `json:"level"`
	Name       string            `json:"name,omitempty"`
	Schedule   PlantingSchedule  `json:"schedule"`
	Crops      CropPlan          `json:"crops"`
	Inputs     Inputs            `json:"inputs"`
	Water      WaterBalance      `json:"water"`
	Pests      []PestAlert       `json:"pests"`
	Production ProductionCascade `json:"production"`
}
