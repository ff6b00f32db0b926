// Package planning turns planting-plan rows into the planning panel model.
// The national table is pre-aggregated per crop; every sub-national table
// carries a dominant-crop pattern and needs dosages applied. Decode and
// Transform branch on level, never on the row shape.
package planning

import (
	"fmt"

	"indash/entities"
	"indash/pkg/query/repository"
)

// DecodeWater reads the MT1..MT3 WRQ, WTOT, IRR and WDQ columns.
func DecodeWater(row repository.Row) [3]entities.SeasonWater {
	var w [3]entities.SeasonWater
	for i := range w {
		p := fmt.Sprintf("MT%d_", i+1)
		w[i] = entities.SeasonWater{
			Requirement: row.Float(p + "WRQ"),
			Available:   row.Float(p + "WTOT"),
			Deficit:     row.Float(p + "IRR"),
			Ratio:       row.Float(p + "WDQ"),
		}
	}
	return w
}

// Decode coerces a planning row for level.
func Decode(level entities.Level, row repository.Row) entities.PlanningRecord {
	rec := entities.PlanningRecord{Level: level}
	if level == entities.LevelNational {
		rec.National = decodeNational(row)
	} else {
		rec.Regional = decodeRegional(row)
	}
	return rec
}

func decodeNational(row repository.Row) *entities.NationalPlanningRecord {
	return &entities.NationalPlanningRecord{
		Name:       row.String("NAMA"),
		Year:       row.Int("TAHUN"),
		Season:     row.Int("SEA", "MUSIM"),
		Area:       cropValues(row, "PADI_ha", "JAGUNG_ha", "KEDELAI_ha"),
		Production: cropValues(row, "PADI_ton", "JAGUNG_ton", "KEDELAI_ton"),
		Seed:       cropValues(row, "PA_BENIH_kg", "JA_BENIH_kg", "LE_BENIH_kg"),
		Urea:       cropValues(row, "PA_UREA_m_ton", "JA_UREA_m_ton", "LE_UREA_m_ton"),
		NPK:        cropValues(row, "PA_NPK_ton", "JA_NPK_ton", "LE_NPK_ton"),
		FallowArea: row.Float("BERA_ha"),
		LBS:        row.Float("LBS"),
		RiceIndex:  row.Float("IP_Padi"),
		Water:      DecodeWater(row),
	}
}

func decodeRegional(row repository.Row) *entities.RegionalPlanningRecord {
	r := &entities.RegionalPlanningRecord{
		Name:         row.String("NAMA", "NAMA_ADMIN"),
		Year:         row.Int("TAHUN"),
		Season:       row.Int("SEA", "MUSIM"),
		StartDekad:   row.Int("DST"),
		LBS:          row.Float("LBS"),
		Pattern:      row.String("POLA"),
		Productivity: cropValues(row, "PADI", "JAGUNG", "KEDELAI"),
		Water:        DecodeWater(row),
		PestRisk: entities.PestRisk{
			Planthopper: row.Float("OPT_WERENG"),
			Rat:         row.Float("OPT_TIKUS"),
			Blast:       row.Float("OPT_BLAST"),
			Blight:      row.Float("OPT_BLB"),
		},
		PestLoss:       row.Float("KEHILANGAN_OPT"),
		WaterLossPct:   row.Float("KEHILANGAN_AIR_PCT"),
		PestLossPct:    row.Float("KEHILANGAN_OPT_PCT"),
		EstimatedYield: row.Float("PRODUKSI_ESTIMASI"),
	}
	if row.Has("LUAS_PADI", "LUAS_JAGUNG", "LUAS_KEDELAI") {
		a := cropValues(row, "LUAS_PADI", "LUAS_JAGUNG", "LUAS_KEDELAI")
		r.ExplicitArea = &a
	}
	return r
}

func cropValues(row repository.Row, rice, corn, soybean string) entities.CropValues {
	return entities.CropValues{
		Rice:    row.Float(rice),
		Corn:    row.Float(corn),
		Soybean: row.Float(soybean),
	}
}
