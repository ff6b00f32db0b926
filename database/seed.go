package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type seedTable struct {
	name string
	cols []string
	rows [][]any
}

var waterCols = []string{
	"MT1_WRQ", "MT1_WTOT", "MT1_IRR", "MT1_WDQ",
	"MT2_WRQ", "MT2_WTOT", "MT2_IRR", "MT2_WDQ",
	"MT3_WRQ", "MT3_WTOT", "MT3_IRR", "MT3_WDQ",
}

var monitoringCols = []string{
	"id_admin", "id_bps", "x0", "x1", "x2", "x3", "x4", "x5", "x6", "x7",
	"data_date", "lbs", "provitas_bps", "provitas_sc",
}

func regionalCols(idCol string, named bool) []string {
	cols := []string{idCol}
	if named {
		cols = append(cols, "NAMA")
	}
	cols = append(cols, "TAHUN", "SEA", "DST", "LBS", "POLA", "LUAS_PADI", "LUAS_JAGUNG", "LUAS_KEDELAI",
		"PADI", "JAGUNG", "KEDELAI")
	cols = append(cols, waterCols...)
	return append(cols, "OPT_WERENG", "OPT_TIKUS", "OPT_BLAST", "OPT_BLB",
		"KEHILANGAN_OPT", "KEHILANGAN_AIR_PCT", "KEHILANGAN_OPT_PCT", "PRODUKSI_ESTIMASI")
}

var dasarianCols = []string{"TAHUN", "SEA", "MT", "DSR", "DST", "WTOT", "WRQ", "IRR", "WDQ", "CROP"}

func dasarianRows(id string, dst int, deficits []float64) [][]any {
	rows := make([][]any, 0, len(deficits))
	for i, irr := range deficits {
		wrq := 55.0 + float64(i%4)*5
		rows = append(rows, []any{id, "2025", "1", 1, i + 1, dst, wrq - irr, wrq, irr, (wrq - irr) / wrq * 100, "1"})
	}
	return rows
}

// dekadNormals is a typical West Java dekad rainfall in mm, by month.
var dekadNormals = [12]float64{120, 110, 105, 90, 70, 45, 35, 30, 45, 80, 110, 125}

func rainfallCols(idCol string, withYear bool) []string {
	cols := []string{idCol}
	if withYear {
		cols = append(cols, "TAHUN")
	}
	for d := 1; d <= 36; d++ {
		cols = append(cols, fmt.Sprintf("d%02d", d))
	}
	return cols
}

// rainfallRow fills d01..d36 from dekadNormals scaled by factor(dekad).
func rainfallRow(id string, year int, factor func(int) float64) []any {
	row := []any{id}
	if year > 0 {
		row = append(row, fmt.Sprint(year))
	}
	for d := 1; d <= 36; d++ {
		row = append(row, dekadNormals[(d-1)/3]*factor(d))
	}
	return row
}

func normalFactor(int) float64 { return 1 }

func predictionFactor(d int) float64 { return 0.85 + float64(d%5)*0.075 }

// demoTables is a small slice of the three source schemas around Kabupaten
// Bogor, for offline runs and tests.
func demoTables() []seedTable {
	// Predictions are read for the current year.
	year := time.Now().Year()
	return []seedTable{
		{"t2_admin", []string{"ID_ADMIN", "NAMA"}, [][]any{
			{"1", "Indonesia"}, {"32", "JAWA BARAT"}, {"3201", "BOGOR"},
			{"320101", "CIBINONG"}, {"3201012001", "PONDOK RAJEG"}, {"33", "JAWA TENGAH"},
		}},
		{"latest", []string{"TAHUN", "MUSIM"}, [][]any{{"2025", "1"}}},
		{"provitas_kab", []string{"ID_KABU", "PADI", "JAGUNG", "KEDELAI"}, [][]any{{"3201", 5.8, 4.9, 1.6}}},

		{"q_sc_nasional", monitoringCols, [][]any{
			{"1", nil, 0, 1200, 1500, 1300, 1100, 900, 2000, 0, "251115", 7400000, 5.2, 5.4},
		}},
		{"q_sc_propinsi", monitoringCols, [][]any{
			{nil, "32", 0, 120, 150, 130, 110, 90, 200, 0, "251031", 890000, 5.5, 0},
			{nil, "32", 0, 110, 160, 140, 100, 95, 195, 0, "251115", 900000, 5.6, 0},
		}},
		{"q_sc_kabupaten", monitoringCols, [][]any{
			{nil, "3201", 4, 30, 45, 40, 35, 25, 25, 0, "251115", 45000, 5.7, 6.1},
		}},
		{"q_sc_kecamatan", monitoringCols, [][]any{
			{nil, "320101", 1, 8, 12, 10, 9, 6, 5, 0, "251130", 2100, 0, 0},
		}},
		{"q_sc_desa", monitoringCols, [][]any{
			{nil, "3201012001", 0, 2, 3, 3, 2, 1, 1, 0, "251115", 350, 5.7, 0},
		}},

		{"v2_katam_nasional", append([]string{"ID_ADMIN", "NAMA", "TAHUN", "SEA",
			"PADI_ha", "JAGUNG_ha", "KEDELAI_ha", "BERA_ha", "LBS", "IP_Padi",
			"PA_BENIH_kg", "JA_BENIH_kg", "LE_BENIH_kg",
			"PA_NPK_ton", "PA_UREA_m_ton", "JA_NPK_ton", "JA_UREA_m_ton", "LE_NPK_ton", "LE_UREA_m_ton",
			"PADI_ton", "JAGUNG_ton", "KEDELAI_ton"}, waterCols...), [][]any{
			{"1", "Indonesia", "2025", "1",
				7100000, 2300000, 250000, 400000, 7400000, 1.87,
				177500000, 46000000, 10000000,
				1420000, 1775000, 345000, 460000, 25000, 12500,
				36920000, 10350000, 375000,
				620, 540, 80, 87.1, 580, 430, 150, 74.1, 510, 300, 210, 58.8},
		}},
		{"v2_katam_prov", regionalCols("ID_PROV", true), [][]any{
			{"32", "JAWA BARAT", "2025", "1", 28, 900000, "112", 820000, 60000, 20000, 5.6, 4.8, 1.5,
				610, 560, 50, 91.8, 590, 450, 140, 76.3, 500, 320, 180, 64,
				0.2, 0.1, 0.35, 0.05, 12000, 4, 2, 0},
		}},
		{"v2_katam_kabu", regionalCols("ID_KABU", true), [][]any{
			{"3201", "BOGOR", "2025", "1", 28, 45000, "120", nil, nil, nil, 5.5, 4.6, 1.4,
				600, 450, 150, 75, 580, 500, 80, 86.2, 520, 300, 220, 57.7,
				0.45, 0.31, 0.1, 0.5, 2300, 6, 3, 0},
		}},
		{"v2_katam_summary_keca", regionalCols("ID_KECA", true), [][]any{
			{"320101", "CIBINONG", "2025", "1", 30, 2100, "110", nil, nil, nil, 0, 0, 0,
				590, 590, 0, 100, 570, 520, 50, 91.2, 500, 350, 150, 70,
				0, 0, 0, 0, 0, 0, 0, 0},
		}},
		{"v2_katam_summary_desa", regionalCols("ID_DESA", false), [][]any{
			{"3201012001", "2025", "1", 28, 350, "123", nil, nil, nil, 5.9, 0, 0,
				600, 470, 130, 78.3, 560, 500, 60, 89.3, 500, 330, 170, 66,
				0.32, 0, 0, 0, 40, 5, 1, 1650},
		}},
		{"v2_katam_summary", regionalCols("ID_LAHAN", false), [][]any{
			{"3201012001001", "2025", "1", 29, 1.2, "100", nil, nil, nil, 0, 0, 0,
				600, 480, 120, 80, 560, 520, 40, 92.9, 500, 400, 100, 80,
				0, 0, 0, 0, 0, 0, 0, 0},
		}},

		{"t2_katam_keca", append([]string{"ID_KECA"}, dasarianCols...), nil},
		{"t2_katam_desa", append([]string{"ID_DESA"}, dasarianCols...),
			dasarianRows("3201012001", 28, []float64{0, 0, 15, 30, 0, 12, 0, 0, 120, 5, 0, 0})},
		{"t2_katam", append([]string{"ID_LAHAN"}, dasarianCols...),
			dasarianRows("3201012001001", 35, []float64{0, 0, 15, 0, 0, 0, 0, 0, 0, 0, 0, 0})},

		{"t2_pre_pred_kabu", rainfallCols("ID_KABU", true), [][]any{rainfallRow("3201", year, predictionFactor)}},
		{"t2_pre_norm_kabu", rainfallCols("ID_KABU", false), [][]any{rainfallRow("3201", 0, normalFactor)}},
		{"t2_pre_pred", rainfallCols("ID_DESA", true), [][]any{rainfallRow("3201012001", year, predictionFactor)}},
		{"t2_pre_norm", rainfallCols("ID_DESA", false), [][]any{rainfallRow("3201012001", 0, normalFactor)}},
	}
}

// SeedDemo creates and fills the demo tables once. It is a no-op when the
// replica already has t2_admin.
func SeedDemo(db *gorm.DB) error {
	ok, err := tableExists(db, "t2_admin")
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, t := range demoTables() {
			if err := tx.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", t.name, strings.Join(t.cols, ", "))).Error; err != nil {
				return fmt.Errorf("create %s: %w", t.name, err)
			}
			insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
				t.name, strings.Join(t.cols, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(t.cols)), ", "))
			for i, row := range t.rows {
				if len(row) != len(t.cols) {
					return fmt.Errorf("seed %s row %d: %d values for %d columns", t.name, i, len(row), len(t.cols))
				}
				if err := tx.Exec(insert, row...).Error; err != nil {
					return fmt.Errorf("seed %s row %d: %w", t.name, i, err)
				}
			}
		}
		return nil
	})
}
