// Package export writes the irrigation schedule and the level summary to an
// XLSX workbook.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"indash/entities"
)

const (
	SheetSchedule = "Jadwal"
	SheetChart    = "Grafik"
	SheetSummary  = "Ringkasan"
)

var summaryLevels = []entities.Level{
	entities.LevelVillage,
	entities.LevelDistrict,
	entities.LevelProvince,
	entities.LevelNational,
}

// IrrigationWorkbook builds the export. Either argument may be nil, in which
// case its sheets only carry headers.
func IrrigationWorkbook(s *entities.IrrigationSchedule, sum *entities.Summary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSchedule); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetChart, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("new sheet %s: %w", name, err)
		}
	}
	if err := writeSchedule(f, s); err != nil {
		return nil, err
	}
	if err := writeChart(f, s); err != nil {
		return nil, err
	}
	if err := writeSummary(f, sum); err != nil {
		return nil, err
	}
	return f, nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}

func writeSchedule(f *excelize.File, s *entities.IrrigationSchedule) error {
	if err := setRow(f, SheetSchedule, 1, "Jadwal", "Defisit (mm)", "Debit (l/dtk)", "Durasi (jam)", "Pompa (unit)"); err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	for i, r := range s.Rows {
		if err := setRow(f, SheetSchedule, i+2, r.Period, r.Deficit, r.Debit, r.DurationHours, r.PumpUnits); err != nil {
			return err
		}
	}
	n := len(s.Rows) + 3
	if err := setRow(f, SheetSchedule, n, "Total defisit", s.Summary.TotalDeficit); err != nil {
		return err
	}
	return setRow(f, SheetSchedule, n+1, "Periode defisit", s.Summary.DeficitCount)
}

func writeChart(f *excelize.File, s *entities.IrrigationSchedule) error {
	if err := setRow(f, SheetChart, 1, "Periode", "Kebutuhan (mm)", "Ketersediaan (mm)", "Defisit (mm)"); err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	c := s.Chart
	for i, label := range c.Labels {
		if err := setRow(f, SheetChart, i+2, label, c.Requirement[i], c.Available[i], c.Deficit[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, sum *entities.Summary) error {
	if err := setRow(f, SheetSummary, 1,
		"Level", "ID", "Nama", "LBS (ha)", "Prakiraan Panen (ha)", "Produksi SISCROP (ton)",
		"Luas Tanam KATAM (ha)", "Estimasi Produksi KATAM (ton)", "Awal Tanam", "Keterangan"); err != nil {
		return err
	}
	if sum == nil {
		return nil
	}
	row := 2
	for _, l := range summaryLevels {
		a, requested := sum.Availability[l]
		if !requested {
			continue
		}
		d := sum.Get(l)
		var err error
		if d == nil {
			err = setRow(f, SheetSummary, row, l.String(), "", "", "", "", "", "", "", "", a.Message)
		} else {
			err = setRow(f, SheetSummary, row, l.String(), d.ID, d.Name,
				d.Monitoring.TotalLBS, d.Monitoring.TotalHarvestForecast, d.Monitoring.TotalProduction,
				d.Planning.TotalArea, d.Planning.EstimatedProduction, d.Planning.PlantingStartDate, a.Details)
		}
		if err != nil {
			return err
		}
		row++
	}
	return nil
}
