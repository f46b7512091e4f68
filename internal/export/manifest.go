package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/piwi3910/CargoLoad/internal/model"
	"github.com/xuri/excelize/v2"
)

var manifestHeader = []string{
	"Container", "Type", "Unit ID", "Name",
	"Length", "Width", "Height", "Weight",
	"X", "Y", "Z", "Rotated",
}

var overflowHeader = []string{
	"Unit ID", "Name", "Length", "Width", "Height", "Weight", "Reason",
}

// manifestRows returns one row per loaded unit in container order.
func manifestRows(result model.FleetResult) [][]string {
	var rows [][]string
	for _, ci := range result.Containers {
		for _, u := range ci.Units {
			rows = append(rows, []string{
				strconv.Itoa(ci.Seq),
				ci.Type.Name,
				u.ID,
				u.Name,
				meters(u.Length),
				meters(u.Width),
				meters(u.Height),
				kilos(u.Weight),
				meters(u.X),
				meters(u.Y),
				meters(u.Z),
				yesNo(u.Rotated),
			})
		}
	}
	return rows
}

func overflowRows(result model.FleetResult) [][]string {
	rows := make([][]string, 0, len(result.Overflow))
	for _, o := range result.Overflow {
		u := o.Unit
		rows = append(rows, []string{
			u.ID,
			u.Name,
			meters(u.Length),
			meters(u.Width),
			meters(u.Height),
			kilos(u.Weight),
			o.Reason,
		})
	}
	return rows
}

func meters(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }
func kilos(v float64) string  { return strconv.FormatFloat(v, 'f', 2, 64) }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// WriteManifestCSV writes the packing list: one row per loaded unit, then an
// "Overflow" section listing every unit left behind with its reason.
func WriteManifestCSV(w io.Writer, result model.FleetResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(manifestHeader); err != nil {
		return err
	}
	if err := cw.WriteAll(manifestRows(result)); err != nil {
		return err
	}

	if len(result.Overflow) > 0 {
		if err := cw.Write([]string{"Overflow"}); err != nil {
			return err
		}
		if err := cw.Write(overflowHeader); err != nil {
			return err
		}
		if err := cw.WriteAll(overflowRows(result)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportManifestCSV writes the packing list to a CSV file.
func ExportManifestCSV(path string, result model.FleetResult) error {
	if len(result.Containers) == 0 && len(result.Overflow) == 0 {
		return fmt.Errorf("nothing to export")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := WriteManifestCSV(f, result); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return f.Close()
}

// Sheet names used in the XLSX manifest.
const (
	SheetManifest = "Manifest"
	SheetSummary  = "Summary"
	SheetOverflow = "Overflow"
)

// ExportManifestXLSX writes the packing list as a workbook with a Manifest
// sheet, a per-container Summary sheet and, if needed, an Overflow sheet.
func ExportManifestXLSX(path string, result model.FleetResult) error {
	if len(result.Containers) == 0 && len(result.Overflow) == 0 {
		return fmt.Errorf("nothing to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetManifest); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSheet(f, SheetManifest, manifestHeader, manifestRows(result), headerStyle); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	if err := writeSheet(f, SheetSummary, summaryHeader, summaryRows(result), headerStyle); err != nil {
		return err
	}

	if len(result.Overflow) > 0 {
		if _, err := f.NewSheet(SheetOverflow); err != nil {
			return err
		}
		if err := writeSheet(f, SheetOverflow, overflowHeader, overflowRows(result), headerStyle); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

var summaryHeader = []string{
	"Container", "Type", "Units", "Weight (kg)", "Max Weight (kg)",
	"Volume %", "Weight %", "CoG % of length", "Warning",
}

func summaryRows(result model.FleetResult) [][]string {
	rows := make([][]string, 0, len(result.Containers))
	for _, ci := range result.Containers {
		rows = append(rows, []string{
			strconv.Itoa(ci.Seq),
			ci.Type.Name,
			strconv.Itoa(len(ci.Units)),
			kilos(ci.TotalWeight()),
			kilos(ci.Type.MaxWeight),
			fmt.Sprintf("%.1f", ci.VolumeUtilization()),
			fmt.Sprintf("%.1f", ci.WeightUtilization()),
			fmt.Sprintf("%.1f", ci.CenterOfGravity()),
			ci.Warning,
		})
	}
	return rows
}

// writeSheet fills a sheet with a styled header row followed by data rows.
// Cells that parse as numbers are stored as numbers.
func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string, headerStyle int) error {
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for r, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			var value interface{} = v
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				value = n
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
