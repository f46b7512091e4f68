package export

import (
	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/CargoLoad/internal/engine"
	"github.com/piwi3910/CargoLoad/internal/model"
)

func catalogType(id string) model.ContainerType {
	return *model.FindContainer(model.DefaultCatalog(), id)
}

func pallet(id string, x, y, z float64) model.PlacementUnit {
	return model.PlacementUnit{
		ID: id, TemplateID: "pallet", Name: "Euro Pallet",
		Length: 1.2, Width: 0.8, Height: 1.0, Weight: 300,
		Stackable: true, Rotatable: true,
		X: x, Y: y, Z: z,
	}
}

// buildTestResult returns a small hand-built plan: two containers and one
// overflowed beam.
func buildTestResult() model.FleetResult {
	crate := model.PlacementUnit{
		ID: "crate_1", TemplateID: "crate", Name: "Crate",
		Length: 1.0, Width: 0.6, Height: 0.9, Weight: 150,
		Stackable: false, Rotatable: true,
		X: 1.3, Y: 0, Z: 0, Rotated: true,
	}
	beam := model.PlacementUnit{
		ID: "beam_1", TemplateID: "beam", Name: "Steel Beam",
		Length: 14, Width: 0.3, Height: 0.3, Weight: 2000,
	}

	return model.FleetResult{
		Containers: []model.ContainerInstance{
			{
				Seq:   1,
				Type:  catalogType("20_dv_iso"),
				Units: []model.PlacementUnit{pallet("pallet_1", 0.1, 0, 0), pallet("pallet_2", 0.1, 1.0, 0), crate},
			},
			{
				Seq:     2,
				Type:    catalogType("40_dv_iso"),
				Units:   []model.PlacementUnit{pallet("pallet_3", 0, 0, 0)},
				Warning: "Load unbalanced: centre of gravity at 5.0% of length",
			},
		},
		Overflow: []model.OverflowRecord{
			{Unit: beam, Reason: engine.ReasonTooLong},
		},
	}
}

func newLabelTestPDF() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 7)
	return pdf
}
