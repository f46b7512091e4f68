// Package importer reads cargo lists from CSV and Excel files and from pasted
// spreadsheet text. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/CargoLoad/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Cargo    []model.CargoTemplate
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name      int
	Length    int
	Width     int
	Height    int
	Weight    int
	Quantity  int
	Stackable int
	Rotatable int
	GapLength int
	GapWidth  int
}

// positionalMapping is the column order used when no header is present:
// Name, L, W, H, Weight, Qty, Stack, Rot, GapL, GapW.
var positionalMapping = ColumnMapping{
	Name: 0, Length: 1, Width: 2, Height: 3, Weight: 4,
	Quantity: 5, Stackable: 6, Rotatable: 7, GapLength: 8, GapWidth: 9,
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":       {"name", "label", "item", "description", "desc", "cargo", "sku", "article"},
	"length":     {"length", "l", "len", "length (m)", "l (m)"},
	"width":      {"width", "w", "wid", "width (m)", "w (m)"},
	"height":     {"height", "h", "ht", "height (m)", "h (m)"},
	"weight":     {"weight", "wt", "kg", "weight (kg)", "mass", "gross weight"},
	"quantity":   {"quantity", "qty", "count", "num", "amount", "pcs", "pieces", "units"},
	"stackable":  {"stackable", "stack", "stackable?", "can stack"},
	"rotatable":  {"rotatable", "rot", "rotate", "rotation", "can rotate"},
	"gap_length": {"gap_length", "gap length", "gapl", "gap l", "clearance length"},
	"gap_width":  {"gap_width", "gap width", "gapw", "gap w", "clearance width"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name: -1, Length: -1, Width: -1, Height: -1, Weight: -1,
		Quantity: -1, Stackable: -1, Rotatable: -1, GapLength: -1, GapWidth: -1,
	}
	slots := map[string]*int{
		"name":       &mapping.Name,
		"length":     &mapping.Length,
		"width":      &mapping.Width,
		"height":     &mapping.Height,
		"weight":     &mapping.Weight,
		"quantity":   &mapping.Quantity,
		"stackable":  &mapping.Stackable,
		"rotatable":  &mapping.Rotatable,
		"gap_length": &mapping.GapLength,
		"gap_width":  &mapping.GapWidth,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if slot := slots[role]; *slot == -1 {
						*slot = i
					}
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

// parseFlag converts a yes/no style cell. Empty cells return def.
func parseFlag(s string, def bool) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, true
	case "1", "true", "yes", "y", "x":
		return true, true
	case "0", "false", "no", "n", "-":
		return false, true
	default:
		return def, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDimension(row []string, idx int, rowLabel, field string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, field)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, field, s)
	}
	return v, ""
}

// parseRow extracts a CargoTemplate from a row using the given column mapping.
// Returns the template, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, count int) (model.CargoTemplate, string, []string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Item %d", count+1)
	}

	var dims [4]float64
	fields := []struct {
		idx  int
		name string
	}{
		{mapping.Length, "length"},
		{mapping.Width, "width"},
		{mapping.Height, "height"},
		{mapping.Weight, "weight"},
	}
	for i, f := range fields {
		v, errMsg := parseDimension(row, f.idx, rowLabel, f.name)
		if errMsg != "" {
			return model.CargoTemplate{}, errMsg, nil
		}
		dims[i] = v
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		n, err := strconv.Atoi(qtyStr)
		if err != nil {
			return model.CargoTemplate{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
		}
		qty = n
	}

	c := model.NewCargoTemplate(name, dims[0], dims[1], dims[2], dims[3], qty)

	var warnings []string
	if s := getCell(row, mapping.Stackable); s != "" {
		v, ok := parseFlag(s, true)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown stackable value '%s', defaulting to yes", rowLabel, s))
		}
		c.Stackable = v
	}
	if s := getCell(row, mapping.Rotatable); s != "" {
		v, ok := parseFlag(s, true)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown rotatable value '%s', defaulting to yes", rowLabel, s))
		}
		c.Rotatable = v
	}
	for _, gap := range []struct {
		idx  int
		dst  *float64
		name string
	}{
		{mapping.GapLength, &c.GapLength, "length gap"},
		{mapping.GapWidth, &c.GapWidth, "width gap"},
	} {
		s := getCell(row, gap.idx)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: Invalid %s '%s', ignoring", rowLabel, gap.name, s))
			continue
		}
		*gap.dst = v
	}

	if err := c.Validate(); err != nil {
		return model.CargoTemplate{}, fmt.Sprintf("%s: %v", rowLabel, err), nil
	}
	if c.Quantity == 0 {
		return model.CargoTemplate{}, fmt.Sprintf("%s: Quantity must be positive", rowLabel), nil
	}
	return c, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports cargo from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports cargo from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports cargo from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if mapping.Weight == -1 {
			missing = append(missing, "Weight")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// Unrecognised header: the first dimension column is not numeric
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		c, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Cargo))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Cargo = append(result.Cargo, c)
	}

	return result
}
