package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Name,L,W,H,Weight\nCrate,1,1,1,10\n", ','},
		{"semicolon", "Name;L;W;H;Weight\nCrate;1;1;1;10\n", ';'},
		{"tab", "Name\tL\tW\tH\tWeight\nCrate\t1\t1\t1\t10\n", '\t'},
		{"pipe", "Name|L|W|H|Weight\nCrate|1|1|1|10\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Name", "Length", "Width", "Height", "Weight", "Quantity", "Stackable", "Rotatable"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Name != 0 || mapping.Length != 1 || mapping.Width != 2 || mapping.Height != 3 {
		t.Errorf("unexpected dimension mapping %+v", mapping)
	}
	if mapping.Weight != 4 || mapping.Quantity != 5 || mapping.Stackable != 6 || mapping.Rotatable != 7 {
		t.Errorf("unexpected attribute mapping %+v", mapping)
	}
	if mapping.GapLength != -1 || mapping.GapWidth != -1 {
		t.Errorf("gap columns should be unmapped, got %+v", mapping)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	row := []string{"QTY", "KG", "H", "W", "L", "SKU", "Gap Length"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Quantity != 0 || mapping.Weight != 1 || mapping.Height != 2 ||
		mapping.Width != 3 || mapping.Length != 4 || mapping.Name != 5 || mapping.GapLength != 6 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Crate", "1.2", "0.8", "1.0", "300"})

	if isHeader {
		t.Error("expected no header")
	}
	if mapping != positionalMapping {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Name,Length,Width,Height,Weight,Qty,Stackable,Rotatable\n" +
		"Pallet,1.2,0.8,1.5,450,10,yes,no\n" +
		"Drum,0.6,0.6,0.9,200,4,0,1\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cargo) != 2 {
		t.Fatalf("expected 2 cargo lines, got %d", len(result.Cargo))
	}

	p := result.Cargo[0]
	if p.Name != "Pallet" || p.Length != 1.2 || p.Width != 0.8 || p.Height != 1.5 {
		t.Errorf("unexpected pallet %+v", p)
	}
	if p.Weight != 450 || p.Quantity != 10 {
		t.Errorf("unexpected weight/quantity %v/%d", p.Weight, p.Quantity)
	}
	if !p.Stackable || p.Rotatable {
		t.Errorf("expected stackable, not rotatable: %+v", p)
	}
	d := result.Cargo[1]
	if d.Stackable || !d.Rotatable {
		t.Errorf("expected not stackable, rotatable: %+v", d)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Crate,1,1,1,100,3,1,1,0.2,0.1\nBox,0.5,0.5,0.5,20\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Cargo) != 2 {
		t.Fatalf("expected 2 cargo lines, got %d (errors: %v)", len(result.Cargo), result.Errors)
	}
	if result.Cargo[0].GapLength != 0.2 || result.Cargo[0].GapWidth != 0.1 {
		t.Errorf("expected gaps 0.2/0.1, got %v/%v", result.Cargo[0].GapLength, result.Cargo[0].GapWidth)
	}
	if result.Cargo[1].Quantity != 1 {
		t.Errorf("missing quantity should default to 1, got %d", result.Cargo[1].Quantity)
	}
	if !result.Cargo[1].Stackable || !result.Cargo[1].Rotatable {
		t.Error("missing flags should default to true")
	}
}

func TestImportCSVFromReader_UnknownHeaderSkipped(t *testing.T) {
	data := "Item Name,Len X,Wid Y,Hgt Z,Mass KG\nCrate,1,1,1,100\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Cargo) != 1 {
		t.Fatalf("expected 1 cargo line, got %d (errors: %v)", len(result.Cargo), result.Errors)
	}
}

func TestImportCSVFromReader_MissingRequiredColumn(t *testing.T) {
	data := "Name,Length,Width,Height\nCrate,1,1,1\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Weight") {
		t.Errorf("expected missing Weight error, got %v", result.Errors)
	}
	if len(result.Cargo) != 0 {
		t.Errorf("expected no cargo, got %d", len(result.Cargo))
	}
}

func TestImportCSVFromReader_InvalidRows(t *testing.T) {
	data := "Name,Length,Width,Height,Weight,Qty\n" +
		"Good,1,1,1,10,1\n" +
		"BadLength,abc,1,1,10,1\n" +
		"Negative,1,-1,1,10,1\n" +
		"NoWeight,1,1,1,,1\n" +
		"ZeroQty,1,1,1,10,0\n" +
		"BadQty,1,1,1,10,many\n" +
		"\n" +
		"AlsoGood,2,1,1,10,2\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Cargo) != 2 {
		t.Fatalf("expected 2 valid lines, got %d", len(result.Cargo))
	}
	if len(result.Errors) != 5 {
		t.Errorf("expected 5 errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestImportCSVFromReader_UnknownFlagWarns(t *testing.T) {
	data := "Name,L,W,H,Weight,Stackable\nCrate,1,1,1,10,maybe\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Cargo) != 1 {
		t.Fatalf("expected 1 cargo line, got %d", len(result.Cargo))
	}
	if !result.Cargo[0].Stackable {
		t.Error("unknown flag should default to stackable")
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "maybe") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected warning about 'maybe', got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_EmptyLabel(t *testing.T) {
	data := "Name,L,W,H,Weight\n,1,1,1,10\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Cargo) != 1 || result.Cargo[0].Name != "Item 1" {
		t.Errorf("expected generated name 'Item 1', got %+v", result.Cargo)
	}
}

func TestImportCSVFromReader_Empty(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cargo.csv")
	data := "Name;Length;Width;Height;Weight;Qty\nCrate;1,2;0,8;1;100;2\nBox;1;1;1;50;1\n"
	// Decimal commas are not supported; the first row is reported
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)

	if len(result.Cargo) != 1 {
		t.Fatalf("expected 1 cargo line, got %d (errors %v)", len(result.Cargo), result.Errors)
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", result.Errors)
	}
	if result.Warnings[0] != "Detected semicolon delimiter" {
		t.Errorf("expected delimiter warning first, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", result.Errors)
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("   \n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := ImportCSV(path)
	if len(result.Errors) != 1 || result.Errors[0] != "File is empty" {
		t.Errorf("expected 'File is empty', got %v", result.Errors)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cargo.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "Length", "Width", "Height", "Weight", "Quantity", "Stackable"},
		{"Pallet", 1.2, 0.8, 1.5, 450, 10, "no"},
		{"Crate", 1, 1, 1, 100, 2, "yes"},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Cargo) != 2 {
		t.Fatalf("expected 2 cargo lines, got %d", len(result.Cargo))
	}
	if result.Cargo[0].Length != 1.2 || result.Cargo[0].Stackable {
		t.Errorf("unexpected pallet %+v", result.Cargo[0])
	}
	if result.Cargo[1].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", result.Cargo[1].Quantity)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Pallet", 1.2, 0.8, 1.5, 450, 10},
		{"Crate", 1, 1, 1, 100, 2},
	})

	result := ImportExcel(path)

	if len(result.Cargo) != 2 {
		t.Fatalf("expected 2 cargo lines, got %d (errors: %v)", len(result.Cargo), result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", result.Errors)
	}
}
