package engine

import (
	"testing"

	"github.com/piwi3910/CargoLoad/internal/model"
	"github.com/stretchr/testify/assert"
)

func catalogType(t *testing.T, id string) model.ContainerType {
	t.Helper()
	ct := model.FindContainer(model.DefaultCatalog(), id)
	if ct == nil {
		t.Fatalf("catalog has no %s", id)
	}
	return *ct
}

func cargo(name string, l, w, h, weight float64, qty int) model.CargoTemplate {
	c := model.NewCargoTemplate(name, l, w, h, weight, qty)
	c.ID = name
	return c
}

func units(name string, l, w, h, weight float64, qty int) []model.PlacementUnit {
	return ExpandUnits([]model.CargoTemplate{cargo(name, l, w, h, weight, qty)})
}

// assertPlacementRules checks the geometric, weight and stacking rules for
// every unit of one container.
func assertPlacementRules(t *testing.T, ct model.ContainerType, packed []model.PlacementUnit) {
	t.Helper()
	caps := model.Classify(ct)

	var weight float64
	for i, u := range packed {
		weight += u.Weight
		if u.Rotated {
			assert.True(t, u.Rotatable, "unit %s rotated but not rotatable", u.ID)
		}
		for j := i + 1; j < len(packed); j++ {
			assert.False(t, boxesOverlap(footprintBox(u), footprintBox(packed[j])),
				"units %s and %s overlap", u.ID, packed[j].ID)
		}
		if u.Height > caps.PhysHeight+Epsilon {
			assert.InDelta(t, 0, u.Y, Epsilon, "protruding unit %s not on the floor", u.ID)
		}
		if u.Y > Epsilon {
			nb := physicalBox(u)
			var area float64
			for _, q := range packed {
				if q.ID == u.ID {
					continue
				}
				qb := physicalBox(q)
				if abs(q.Top()-u.Y) < Epsilon && nb.overlapX(qb) > Epsilon && nb.overlapZ(qb) > Epsilon {
					assert.True(t, q.Stackable, "unit %s rests on non-stackable %s", u.ID, q.ID)
					area += baseOverlap(nb, qb)
				}
			}
			assert.GreaterOrEqual(t, area, SupportRatio*nb.l*nb.w-Epsilon, "unit %s under-supported", u.ID)
		}
	}
	if ct.MaxWeight > 0 {
		assert.LessOrEqual(t, weight, ct.MaxWeight)
	}
}

func assertFleetRules(t *testing.T, result model.FleetResult, inputUnits int) {
	t.Helper()
	assert.Equal(t, inputUnits, result.PlacedCount()+len(result.Overflow), "every unit must be placed or overflow")

	seen := map[string]bool{}
	for i, c := range result.Containers {
		assert.Equal(t, i+1, c.Seq)
		assert.NotEmpty(t, c.Units)
		for _, u := range c.Units {
			assert.False(t, seen[u.ID], "unit %s placed twice", u.ID)
			seen[u.ID] = true
		}
		assertPlacementRules(t, c.Type, c.Units)
	}
	for _, o := range result.Overflow {
		assert.False(t, seen[o.Unit.ID], "unit %s both placed and overflowed", o.Unit.ID)
		seen[o.Unit.ID] = true
		assert.NotEmpty(t, o.Reason)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
