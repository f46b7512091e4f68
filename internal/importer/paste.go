package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/piwi3910/CargoLoad/internal/model"
)

var pasteSeparator = regexp.MustCompile(`[\t,]`)

// defaultPasteDimension is used for blank or unreadable dimension cells.
const defaultPasteDimension = 0.5

// ParsePaste reads cargo rows copied from a spreadsheet, one template per
// line with tab or comma separated cells:
//
//	Name, L, W, H, Weight, Qty, Stack(0/1), Rot(0/1)[, GapL, GapW]
//
// Lines with fewer than three cells or without a positive weight are skipped.
// Stackable and rotatable are only set by an explicit 1.
func ParsePaste(text string) ImportResult {
	result := ImportResult{}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := pasteSeparator.Split(line, -1)
		if len(cols) < 3 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Line %d: fewer than 3 columns, skipped", i+1))
			continue
		}

		weight, err := strconv.ParseFloat(getCell(cols, 4), 64)
		if err != nil || weight <= 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Line %d: missing or non-positive weight, skipped", i+1))
			continue
		}

		name := getCell(cols, 0)
		if name == "" {
			name = fmt.Sprintf("Item %d", i)
		}
		qty, err := strconv.Atoi(getCell(cols, 5))
		if err != nil || qty == 0 {
			qty = 1
		}

		c := model.NewCargoTemplate(name,
			pasteDimension(cols, 1), pasteDimension(cols, 2), pasteDimension(cols, 3),
			weight, qty)
		c.Stackable = getCell(cols, 6) == "1"
		c.Rotatable = getCell(cols, 7) == "1"
		c.GapLength = pasteGap(cols, 8)
		c.GapWidth = pasteGap(cols, 9)

		if err := c.Validate(); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Line %d: %v, skipped", i+1, err))
			continue
		}
		result.Cargo = append(result.Cargo, c)
	}

	if len(result.Cargo) == 0 {
		result.Errors = append(result.Errors, "Invalid data format")
	}
	return result
}

func pasteDimension(cols []string, idx int) float64 {
	v, err := strconv.ParseFloat(getCell(cols, idx), 64)
	if err != nil || v == 0 {
		return defaultPasteDimension
	}
	return v
}

func pasteGap(cols []string, idx int) float64 {
	v, err := strconv.ParseFloat(getCell(cols, idx), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
