// Package export writes load plans to PDF, spreadsheet, label and chart files.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/CargoLoad/internal/engine"
	"github.com/piwi3910/CargoLoad/internal/model"
)

// unitColor represents an RGB color for a placed unit.
type unitColor struct {
	R, G, B int
}

// unitColors is cycled per cargo template so all units of a line share a color.
var unitColors = []unitColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	viewGap      = 12.0
	legendHeight = 22.0
	drawAreaTop  = marginTop + headerHeight + 8.0
)

// ExportPDF generates a load plan document. Each container gets its own page
// with a top view and a side view, followed by a summary page listing the
// fleet and any overflow.
func ExportPDF(path string, result model.FleetResult) error {
	if len(result.Containers) == 0 && len(result.Overflow) == 0 {
		return fmt.Errorf("no containers to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	palette := templatePalette(result)
	for _, ci := range result.Containers {
		pdf.AddPage()
		renderContainerPage(pdf, ci, palette)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// templatePalette assigns a color to every template ID in first-seen order.
func templatePalette(result model.FleetResult) map[string]unitColor {
	palette := make(map[string]unitColor)
	for _, ci := range result.Containers {
		for _, u := range ci.Units {
			if _, ok := palette[u.TemplateID]; !ok {
				palette[u.TemplateID] = unitColors[len(palette)%len(unitColors)]
			}
		}
	}
	return palette
}

// renderContainerPage draws a single container on the current PDF page.
func renderContainerPage(pdf *fpdf.Fpdf, ci model.ContainerInstance, palette map[string]unitColor) {
	ct := ci.Type

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s: %s (%.2f x %.2f x %.2f m)", ci.Label(), ct.Name, ct.Length, ct.Width, ct.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Units: %d | Weight: %.0f / %.0f kg (%.1f%%) | Volume: %.1f%% | CoG: %.1f%% of length",
		len(ci.Units), ci.TotalWeight(), ct.MaxWeight, ci.WeightUtilization(), ci.VolumeUtilization(), ci.CenterOfGravity())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	if ci.Warning != "" {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, marginTop+headerHeight+5)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, ci.Warning, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	// Both views share one scale so lengths line up vertically.
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight - viewGap
	lo, hi := extentX(ci)
	spanX := hi - lo
	spanW := extentZ(ci)
	spanH := extentY(ci)
	scale := math.Min(drawWidth/spanX, drawHeight/(spanW+spanH))

	offsetX := marginLeft + (drawWidth-spanX*scale)/2 - lo*scale
	topY := drawAreaTop
	sideY := topY + spanW*scale + viewGap

	drawTopView(pdf, ci, palette, scale, offsetX, topY)
	drawSideView(pdf, ci, palette, scale, offsetX, sideY)

	drawUnitLegend(pdf, ci, palette, sideY+spanH*scale+6)
}

// extentX returns the horizontal span to draw: the container length widened by
// any overhanging unit.
func extentX(ci model.ContainerInstance) (lo, hi float64) {
	hi = ci.Type.Length
	for _, u := range ci.Units {
		lo = math.Min(lo, u.X)
		hi = math.Max(hi, u.X+u.PlacedLength())
	}
	return lo, hi
}

func extentZ(ci model.ContainerInstance) float64 {
	lo, hi := 0.0, ci.Type.Width
	for _, u := range ci.Units {
		lo = math.Min(lo, u.Z)
		hi = math.Max(hi, u.Z+u.PlacedWidth())
	}
	return hi - lo
}

func extentY(ci model.ContainerInstance) float64 {
	h := ci.Type.Height
	for _, u := range ci.Units {
		h = math.Max(h, u.Top())
	}
	return h
}

// drawTopView renders the floor plan looking down: length runs left to right,
// width runs down the page.
func drawTopView(pdf *fpdf.Fpdf, ci model.ContainerInstance, palette map[string]unitColor, scale, offsetX, offsetY float64) {
	minZ := 0.0
	for _, u := range ci.Units {
		minZ = math.Min(minZ, u.Z)
	}
	originY := offsetY - minZ*scale

	drawViewCaption(pdf, "Top view", offsetX, offsetY)
	drawContainerOutline(pdf, ci.Type.Equipment, offsetX, originY, ci.Type.Length*scale, ci.Type.Width*scale)

	// Lower layers first so the top of each stack stays visible.
	for _, u := range byHeight(ci.Units) {
		col := palette[u.TemplateID]
		drawUnitRect(pdf, u, col, offsetX+u.X*scale, originY+u.Z*scale, u.PlacedLength()*scale, u.PlacedWidth()*scale)
	}

	drawDimension(pdf, fmt.Sprintf("%.2f m", ci.Type.Length), offsetX, originY+ci.Type.Width*scale+1, ci.Type.Length*scale)
}

// drawSideView renders the load seen from the side wall: length runs left to
// right, height runs up the page.
func drawSideView(pdf *fpdf.Fpdf, ci model.ContainerInstance, palette map[string]unitColor, scale, offsetX, offsetY float64) {
	viewH := extentY(ci) * scale
	floorY := offsetY + viewH

	drawViewCaption(pdf, "Side view", offsetX, offsetY)
	drawContainerOutline(pdf, ci.Type.Equipment, offsetX, floorY-ci.Type.Height*scale, ci.Type.Length*scale, ci.Type.Height*scale)

	// Units nearest the viewer are drawn last.
	units := make([]model.PlacementUnit, len(ci.Units))
	copy(units, ci.Units)
	sortByDepth(units)
	for _, u := range units {
		col := palette[u.TemplateID]
		h := u.Height * scale
		drawUnitRect(pdf, u, col, offsetX+u.X*scale, floorY-u.Y*scale-h, u.PlacedLength()*scale, h)
	}

	drawDimension(pdf, fmt.Sprintf("%.2f m", ci.Type.Height), offsetX-14, floorY-ci.Type.Height*scale/2-2, 12)
}

func drawViewCaption(pdf *fpdf.Fpdf, caption string, x, y float64) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(x, y-5)
	pdf.CellFormat(40, 4, caption, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawContainerOutline draws the interior. Open equipment is drawn with a
// dashed outline since cargo may extend past it.
func drawContainerOutline(pdf *fpdf.Fpdf, eq model.Equipment, x, y, w, h float64) {
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	if eq != model.EquipmentStandard {
		pdf.SetDashPattern([]float64{2, 1.5}, 0)
	}
	pdf.Rect(x, y, w, h, "FD")
	pdf.SetDashPattern([]float64{}, 0)
}

func drawUnitRect(pdf *fpdf.Fpdf, u model.PlacementUnit, col unitColor, x, y, w, h float64) {
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, w, h, "FD")

	if w > 12 && h > 6 {
		pdf.SetFont("Helvetica", "", labelFontSize(w, h))
		pdf.SetTextColor(0, 0, 0)
		label := u.Name
		if lw := pdf.GetStringWidth(label); lw < w-2 {
			pdf.SetXY(x+(w-lw)/2, y+h/2-2)
			pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
		}
	}
}

func drawDimension(pdf *fpdf.Fpdf, text string, x, y, w float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	tw := pdf.GetStringWidth(text)
	pdf.SetXY(x+(w-tw)/2, y)
	pdf.CellFormat(tw, 4, text, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawUnitLegend lists every cargo line in the container with its count.
func drawUnitLegend(pdf *fpdf.Fpdf, ci model.ContainerInstance, palette map[string]unitColor, startY float64) {
	if len(ci.Units) == 0 {
		return
	}

	type entry struct {
		name  string
		tplID string
		count int
		dims  string
	}
	var entries []entry
	index := make(map[string]int)
	for _, u := range ci.Units {
		if i, ok := index[u.TemplateID]; ok {
			entries[i].count++
			continue
		}
		index[u.TemplateID] = len(entries)
		entries = append(entries, entry{
			name:  u.Name,
			tplID: u.TemplateID,
			count: 1,
			dims:  fmt.Sprintf("%.2fx%.2fx%.2f", u.Length, u.Width, u.Height),
		})
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(25, 4, "Cargo loaded:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 27
	maxX := pageWidth - marginRight

	for _, e := range entries {
		col := palette[e.tplID]
		label := fmt.Sprintf("%dx %s (%s m)", e.count, e.name, e.dims)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with fleet statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.FleetResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Load Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Containers Used", fmt.Sprintf("%d", len(result.Containers))},
		{"Units Loaded", fmt.Sprintf("%d", result.PlacedCount())},
		{"Total Weight", fmt.Sprintf("%.0f kg", result.TotalWeight())},
		{"Mean Volume Utilisation", fmt.Sprintf("%.1f%%", result.MeanUtilization())},
		{"Overflow Units", fmt.Sprintf("%d", len(result.Overflow))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	if len(result.Containers) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Container Breakdown", "", 0, "L", false, 0, "")
		y += 9

		colWidths := []float64{30, 55, 45, 20, 40, 30, 47}
		headers := []string{"Container", "Type", "Interior (m)", "Units", "Weight (kg)", "Volume", "Balance"}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		y += 6

		pdf.SetFont("Helvetica", "", 9)
		for i, ci := range result.Containers {
			if y > pageHeight-marginBottom-10 {
				pdf.AddPage()
				y = marginTop
			}
			balance := "OK"
			if !ci.IsBalanced() {
				balance = fmt.Sprintf("CoG %.1f%%", ci.CenterOfGravity())
			}
			rowData := []string{
				fmt.Sprintf("#%d", ci.Seq),
				ci.Type.Name,
				fmt.Sprintf("%.2f x %.2f x %.2f", ci.Type.Length, ci.Type.Width, ci.Type.Height),
				fmt.Sprintf("%d", len(ci.Units)),
				fmt.Sprintf("%.0f / %.0f", ci.TotalWeight(), ci.Type.MaxWeight),
				fmt.Sprintf("%.1f%%", ci.VolumeUtilization()),
				balance,
			}

			if i%2 == 0 {
				pdf.SetFillColor(245, 245, 245)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}

			xPos = marginLeft
			for j, cell := range rowData {
				pdf.SetXY(xPos, y)
				pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
				xPos += colWidths[j]
			}
			y += 6
		}
	}

	if len(result.Overflow) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Cargo not loaded", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, g := range engine.GroupOverflow(result.Overflow) {
			if y > pageHeight-marginBottom-8 {
				pdf.AddPage()
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %dx %s: %.2f x %.2f x %.2f m, %.0f kg (%s)",
				g.Count, g.Name, g.Length, g.Width, g.Height, g.Weight, g.Reason)
			pdf.CellFormat(260, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by CargoLoad - Container Load Planner", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 30:
		return 8
	case minDim > 15:
		return 7
	default:
		return 6
	}
}

// byHeight returns the units ordered by base height, lowest first.
func byHeight(units []model.PlacementUnit) []model.PlacementUnit {
	out := make([]model.PlacementUnit, len(units))
	copy(out, units)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Y < out[j].Y })
	return out
}

// sortByDepth orders units far wall first so nearer units overdraw them.
func sortByDepth(units []model.PlacementUnit) {
	sort.SliceStable(units, func(i, j int) bool { return units[i].Z > units[j].Z })
}
