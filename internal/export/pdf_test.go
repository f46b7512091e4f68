package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CargoLoad/internal/engine"
	"github.com/piwi3910/CargoLoad/internal/model"
)

func assertNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("file is empty")
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")

	if err := ExportPDF(path, buildTestResult()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)

	info, _ := os.Stat(path)
	// Two container pages plus the summary
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	if err := ExportPDF(path, model.FleetResult{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for an empty result")
	}
}

func TestExportPDF_OverflowOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overflow.pdf")

	result := buildTestResult()
	result.Containers = nil

	if err := ExportPDF(path, result); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestExportPDF_FlatRackOverhang(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flatrack.pdf")

	result := model.FleetResult{
		Containers: []model.ContainerInstance{{
			Seq:  1,
			Type: catalogType("20_fr_iso"),
			Units: []model.PlacementUnit{{
				ID: "tank_1", TemplateID: "tank", Name: "Tank",
				Length: 8, Width: 3, Height: 3, Weight: 12000,
				X: -1, Y: 0, Z: -0.3,
			}},
		}},
	}

	if err := ExportPDF(path, result); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestExportPDF_ManyTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")

	// More templates than colors to exercise color cycling
	var units []model.PlacementUnit
	for i := 0; i < 20; i++ {
		units = append(units, model.PlacementUnit{
			ID:         fmt.Sprintf("t%d_1", i),
			TemplateID: fmt.Sprintf("t%d", i),
			Name:       fmt.Sprintf("Box %d", i+1),
			Length:     0.5, Width: 0.5, Height: 0.5, Weight: 10,
			X:       float64(i%10) * 0.5,
			Z:       float64(i/10) * 0.5,
			Rotated: i%3 == 0,
		})
	}
	result := model.FleetResult{
		Containers: []model.ContainerInstance{{Seq: 1, Type: catalogType("20_dv_iso"), Units: units}},
	}

	if err := ExportPDF(path, result); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestExportPDF_LongOverflowList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.pdf")

	result := buildTestResult()
	for i := 0; i < 60; i++ {
		result.Overflow = append(result.Overflow, model.OverflowRecord{
			Unit: model.PlacementUnit{
				ID: fmt.Sprintf("odd%d_1", i), Name: fmt.Sprintf("Odd %d", i),
				Length: 20 + float64(i), Width: 1, Height: 1, Weight: 100,
			},
			Reason: engine.ReasonTooLong,
		})
	}

	if err := ExportPDF(path, result); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestTemplatePalette(t *testing.T) {
	palette := templatePalette(buildTestResult())

	if len(palette) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(palette))
	}
	if palette["pallet"] != unitColors[0] {
		t.Errorf("first template should get the first color, got %+v", palette["pallet"])
	}
	if palette["crate"] != unitColors[1] {
		t.Errorf("second template should get the second color, got %+v", palette["crate"])
	}
}

func TestExtentX(t *testing.T) {
	ci := model.ContainerInstance{
		Type: catalogType("20_fr_iso"),
		Units: []model.PlacementUnit{
			{Length: 8, Width: 2, Height: 1, X: -1},
		},
	}
	lo, hi := extentX(ci)
	if lo != -1 || hi != 7 {
		t.Errorf("extentX = (%v, %v), want (-1, 7)", lo, hi)
	}

	ci.Units = nil
	lo, hi = extentX(ci)
	if lo != 0 || hi != 6 {
		t.Errorf("empty extentX = (%v, %v), want (0, 6)", lo, hi)
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{50, 50, 8},
		{20, 25, 7},
		{10, 15, 6},
	}
	for _, tt := range tests {
		got := labelFontSize(tt.w, tt.h)
		if got != tt.want {
			t.Errorf("labelFontSize(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
