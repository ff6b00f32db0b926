package planning

import (
	"fmt"
	"math"
	"strings"

	"indash/entities"
	"indash/pkg/calendar"
)

// Per-hectare dosages in kg/ha.
var (
	SeedDosage = entities.CropValues{Rice: 25, Corn: 20, Soybean: 40}
	UreaDosage = entities.CropValues{Rice: 250, Corn: 200, Soybean: 50}
	NPKDosage  = entities.CropValues{Rice: 200, Corn: 150, Soybean: 100}
	// DefaultProductivity in ton/ha when neither the district lookup nor
	// the row has a figure.
	DefaultProductivity = entities.CropValues{Rice: 5.0, Corn: 4.5, Soybean: 1.5}
)

const (
	// M3PerMMHectare is the volume of 1 mm of water over 1 ha.
	M3PerMMHectare = 10
	// PestRiskThreshold is the risk value a pest must exceed to be listed.
	PestRiskThreshold = 0.3
	DefaultPattern    = "Padi-Padi-Bera"
	NationalStartDate = "Agregasi Nasional"
	DefaultName       = "Indonesia"
	kgPerTon          = 1000
)

// WaterStatusFor classifies available/requirement x 100. Each tier includes
// its lower bound.
func WaterStatusFor(ratio float64) entities.WaterStatus {
	switch {
	case ratio < 80:
		return entities.WaterSevere
	case ratio < 100:
		return entities.WaterLightDeficit
	}
	return entities.WaterSufficient
}

// ExpectedProduction applies both loss percentages to potential, floored at 0.
func ExpectedProduction(potential, waterLossPct, pestLossPct float64) float64 {
	return math.Max(0, potential-potential*waterLossPct/100-potential*pestLossPct/100)
}

// Transform builds the display model. lookup is the district benchmark and
// may be nil; it is ignored for the national record.
func Transform(id string, rec entities.PlanningRecord, period entities.Period, lookup *entities.CropProductivity) *entities.PlanningDisplay {
	switch {
	case rec.National != nil:
		return transformNational(id, rec.National, period)
	case rec.Regional != nil:
		return transformRegional(id, rec.Level, rec.Regional, period, lookup)
	}
	return nil
}

func selectedSeason(w [3]entities.SeasonWater, season int) entities.SeasonWater {
	if season == entities.SeasonWet {
		return w[0]
	}
	return w[1]
}

func recommended(area entities.CropValues) []string {
	out := []string{}
	for _, c := range entities.Crops {
		if area.Get(c) > 0 {
			out = append(out, c.Label())
		}
	}
	return out
}

func waterBalance(w [3]entities.SeasonWater, season int, ratio, area float64) entities.WaterBalance {
	s := selectedSeason(w, season)
	return entities.WaterBalance{
		Requirement:   s.Requirement,
		Available:     s.Available,
		Deficit:       s.Deficit,
		WDQ:           s.Ratio,
		RequirementM3: s.Requirement * M3PerMMHectare * area,
		AvailableM3:   s.Available * M3PerMMHectare * area,
		DeficitM3:     s.Deficit * M3PerMMHectare * area,
		Ratio:         ratio,
		Status:        WaterStatusFor(ratio),
		Seasons:       w,
	}
}

func computedRatio(s entities.SeasonWater) float64 {
	if s.Requirement > 0 {
		return s.Available / s.Requirement * 100
	}
	return 100
}

func transformNational(id string, n *entities.NationalPlanningRecord, period entities.Period) *entities.PlanningDisplay {
	name := n.Name
	if name == "" {
		name = DefaultName
	}
	pattern := DefaultPattern
	if n.RiceIndex > 0 {
		pattern = fmt.Sprintf("IP Padi: %.2f", n.RiceIndex)
	}
	sel := selectedSeason(n.Water, period.Season)
	ratio := sel.Ratio
	if ratio <= 0 {
		ratio = computedRatio(sel)
	}
	urea := n.Urea.Total() * kgPerTon
	npk := n.NPK.Total() * kgPerTon

	byCrop := map[entities.Crop]entities.CropProduction{}
	for _, c := range entities.Crops {
		a := n.Area.Get(c)
		if a <= 0 {
			continue
		}
		p := n.Production.Get(c)
		byCrop[c] = entities.CropProduction{Area: a, Productivity: p / a, Production: p}
	}
	potential := n.Production.Total()

	return &entities.PlanningDisplay{
		LocationID: id,
		Level:      entities.LevelNational,
		Name:       name,
		Schedule: entities.PlantingSchedule{
			Season:    period.SeasonName(),
			Year:      period.Year,
			StartDate: NationalStartDate,
		},
		Crops: entities.CropPlan{
			Pattern:     pattern,
			Recommended: recommended(n.Area),
			TotalArea:   n.Area.Total(),
			FallowArea:  n.FallowArea,
			Area:        n.Area,
		},
		Inputs: entities.Inputs{
			Seeds:      n.Seed,
			SeedTotal:  n.Seed.Total(),
			Fertilizer: entities.Fertilizer{Urea: urea, NPK: npk, Total: urea + npk},
		},
		Water: waterBalance(n.Water, period.Season, ratio, n.LBS),
		Pests: []entities.PestAlert{},
		Production: entities.ProductionCascade{
			Potential: potential,
			Expected:  potential,
			ByCrop:    byCrop,
		},
	}
}

var patternCrops = map[byte]string{'0': "Bera", '1': "Padi", '2': "Jagung", '3': "Kedelai", '4': "Tergenang"}

// PatternText spells out the first three crop codes, e.g. "120" is
// "Padi-Jagung-Bera". Unknown codes read as Bera.
func PatternText(code string) string {
	if len(code) < 3 {
		return DefaultPattern
	}
	parts := make([]string, 3)
	for i := range parts {
		if n, ok := patternCrops[code[i]]; ok {
			parts[i] = n
		} else {
			parts[i] = "Bera"
		}
	}
	return strings.Join(parts, "-")
}

// cropAreas gives the LUAS_* columns precedence; otherwise the first
// pattern digit assigns the whole LBS to one crop, to fallow or to flooded.
func cropAreas(r *entities.RegionalPlanningRecord) (area entities.CropValues, fallow, flooded float64) {
	if r.ExplicitArea != nil {
		return *r.ExplicitArea, 0, 0
	}
	if r.Pattern == "" {
		return area, 0, 0
	}
	switch r.Pattern[0] {
	case '1':
		area.Rice = r.LBS
	case '2':
		area.Corn = r.LBS
	case '3':
		area.Soybean = r.LBS
	case '0':
		fallow = r.LBS
	case '4':
		flooded = r.LBS
	}
	return area, fallow, flooded
}

// Productivity picks, per crop, the district lookup, then the row value,
// then the default. Zero means absent at each step.
func Productivity(lookup *entities.CropProductivity, row entities.CropValues) entities.CropValues {
	var out entities.CropValues
	for _, c := range entities.Crops {
		v := 0.0
		if lookup != nil {
			v = lookup.Get(c)
		}
		if v <= 0 {
			v = row.Get(c)
		}
		if v <= 0 {
			v = DefaultProductivity.Get(c)
		}
		out.Set(c, v)
	}
	return out
}

func pestAlerts(r entities.PestRisk) []entities.PestAlert {
	out := []entities.PestAlert{}
	for _, p := range []entities.PestAlert{
		{Name: "Wereng", Risk: r.Planthopper},
		{Name: "Tikus", Risk: r.Rat},
		{Name: "Blast", Risk: r.Blast},
		{Name: "Hawar Daun Bakteri", Risk: r.Blight},
	} {
		if p.Risk > PestRiskThreshold {
			out = append(out, p)
		}
	}
	return out
}

func transformRegional(id string, level entities.Level, r *entities.RegionalPlanningRecord, period entities.Period, lookup *entities.CropProductivity) *entities.PlanningDisplay {
	area, fallow, flooded := cropAreas(r)
	total := area.Total()

	var seeds entities.CropValues
	var urea, npk float64
	for _, c := range entities.Crops {
		a := area.Get(c)
		seeds.Set(c, a*SeedDosage.Get(c))
		urea += a * UreaDosage.Get(c)
		npk += a * NPKDosage.Get(c)
	}

	prod := Productivity(lookup, r.Productivity)
	byCrop := map[entities.Crop]entities.CropProduction{}
	potential := 0.0
	for _, c := range entities.Crops {
		a := area.Get(c)
		p := a * prod.Get(c)
		potential += p
		if a > 0 {
			byCrop[c] = entities.CropProduction{Area: a, Productivity: prod.Get(c), Production: p}
		}
	}

	startDekad := r.StartDekad
	if startDekad <= 0 {
		startDekad = 1
	}

	return &entities.PlanningDisplay{
		LocationID: id,
		Level:      level,
		Name:       r.Name,
		Schedule: entities.PlantingSchedule{
			Season:     period.SeasonName(),
			Year:       period.Year,
			StartDekad: startDekad,
			StartDate:  calendar.Label(startDekad),
		},
		Crops: entities.CropPlan{
			Pattern:     PatternText(r.Pattern),
			Recommended: recommended(area),
			TotalArea:   total,
			FallowArea:  fallow,
			FloodedArea: flooded,
			Area:        area,
		},
		Inputs: entities.Inputs{
			Seeds:      seeds,
			SeedTotal:  seeds.Total(),
			Fertilizer: entities.Fertilizer{Urea: urea, NPK: npk, Total: urea + npk},
		},
		Water: waterBalance(r.Water, period.Season, computedRatio(selectedSeason(r.Water, period.Season)), total),
		Pests: pestAlerts(r.PestRisk),
		Production: entities.ProductionCascade{
			Potential:     potential,
			PestLoss:      potential * r.PestLossPct / 100,
			WaterLoss:     potential * r.WaterLossPct / 100,
			PestLossPct:   r.PestLossPct,
			WaterLossPct:  r.WaterLossPct,
			Expected:      ExpectedProduction(potential, r.WaterLossPct, r.PestLossPct),
			EstimatedLoss: r.PestLoss,
			ByCrop:        byCrop,
		},
	}
}
