package engine

import (
	"fmt"

	"github.com/piwi3910/CargoLoad/internal/model"
)

// ExpandUnits turns every template into Quantity individual units, in
// template order. Unit IDs are "<templateID>_<n>" with n counting from 0.
func ExpandUnits(templates []model.CargoTemplate) []model.PlacementUnit {
	units := make([]model.PlacementUnit, 0, model.TotalUnits(templates))
	for _, t := range templates {
		for i := 0; i < t.Quantity; i++ {
			units = append(units, model.PlacementUnit{
				ID:         fmt.Sprintf("%s_%d", t.ID, i),
				TemplateID: t.ID,
				Name:       t.Name,
				Length:     t.Length,
				Width:      t.Width,
				Height:     t.Height,
				Weight:     t.Weight,
				Stackable:  t.Stackable,
				Rotatable:  t.Rotatable,
				GapLength:  t.GapLength,
				GapWidth:   t.GapWidth,
			})
		}
	}
	return units
}
