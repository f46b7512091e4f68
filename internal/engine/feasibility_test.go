package engine

import (
	"testing"

	"github.com/piwi3910/CargoLoad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterFeasible_TooTall(t *testing.T) {
	types := []model.ContainerType{catalogType(t, "20_dv_iso"), catalogType(t, "40_dv_iso")}

	feasible, overflow := FilterFeasible(units("Tower", 1, 1, 3.0, 100, 1), types)

	assert.Empty(t, feasible)
	require.Len(t, overflow, 1)
	assert.Equal(t, ReasonTooTall, overflow[0].Reason)
}

func TestFilterFeasible_TallFitsOpenTop(t *testing.T) {
	types := []model.ContainerType{catalogType(t, "20_dv_iso"), catalogType(t, "20_ot_iso")}

	feasible, overflow := FilterFeasible(units("Tower", 1, 1, 3.0, 100, 1), types)

	assert.Len(t, feasible, 1)
	assert.Empty(t, overflow)
}

func TestFilterFeasible_TooLong(t *testing.T) {
	types := []model.ContainerType{catalogType(t, "40_dv_iso")}

	_, overflow := FilterFeasible(units("Beam", 15, 1, 1, 100, 1), types)

	require.Len(t, overflow, 1)
	assert.Equal(t, ReasonTooLong, overflow[0].Reason)
}

func TestFilterFeasible_LongFitsLargeFlatRack(t *testing.T) {
	types := []model.ContainerType{catalogType(t, "40_dv_iso"), catalogType(t, "40_fr_iso")}

	feasible, overflow := FilterFeasible(units("Beam", 15, 1, 1, 100, 1), types)

	assert.Len(t, feasible, 1)
	assert.Empty(t, overflow)

	// The 20' rack only allows 7 m
	beam := units("Beam", 15, 1, 1, 100, 1)
	beam[0].Rotatable = false
	_, overflow = FilterFeasible(beam, []model.ContainerType{catalogType(t, "20_fr_iso")})
	require.Len(t, overflow, 1)
	assert.Equal(t, ReasonTooLong, overflow[0].Reason)
}

func TestFilterFeasible_TooWide(t *testing.T) {
	u := units("Slab", 2, 3, 1, 100, 1)
	u[0].Rotatable = false

	_, overflow := FilterFeasible(u, []model.ContainerType{catalogType(t, "20_dv_iso")})

	require.Len(t, overflow, 1)
	assert.Equal(t, ReasonTooWide, overflow[0].Reason)
}

func TestFilterFeasible_RotationMakesItFit(t *testing.T) {
	// 1 m long, 3 m wide: only fits turned
	u := units("Slab", 1, 3, 1, 100, 1)

	feasible, _ := FilterFeasible(u, []model.ContainerType{catalogType(t, "20_dv_iso")})
	assert.Len(t, feasible, 1)

	u[0].Rotatable = false
	_, overflow := FilterFeasible(u, []model.ContainerType{catalogType(t, "20_dv_iso")})
	require.Len(t, overflow, 1)
	assert.Equal(t, ReasonTooWide, overflow[0].Reason)
}

func TestFilterFeasible_TooHeavy(t *testing.T) {
	types := []model.ContainerType{catalogType(t, "20_dv_iso"), catalogType(t, "40_hc_iso")}

	_, overflow := FilterFeasible(units("Ingot", 1, 1, 1, 50000, 1), types)

	require.Len(t, overflow, 1)
	assert.Equal(t, ReasonTooHeavy, overflow[0].Reason)
}

func TestFilterFeasible_NoContainer(t *testing.T) {
	feasible, overflow := FilterFeasible(units("Box", 1, 1, 1, 1, 3), nil)

	assert.Empty(t, feasible)
	require.Len(t, overflow, 3)
	for _, o := range overflow {
		assert.Equal(t, ReasonNoContainer, o.Reason)
	}
}

func TestFilterFeasible_GenericReason(t *testing.T) {
	// Too heavy for the big box, too big for the strong one
	types := []model.ContainerType{
		catalogType(t, "40_dv_iso"),
		{ID: "tiny", Name: "Tiny", Length: 0.5, Width: 0.5, Height: 0.5, MaxWeight: 30000},
	}

	_, overflow := FilterFeasible(units("Block", 1, 1, 1, 27500, 1), types)

	require.Len(t, overflow, 1)
	assert.Equal(t, ReasonNoSpace, overflow[0].Reason)
}

func TestFilterFeasible_GapsCount(t *testing.T) {
	ct := model.ContainerType{ID: "box", Length: 2, Width: 1, Height: 1}
	u := units("Machine", 1.8, 1, 1, 10, 1)
	u[0].Rotatable = false

	feasible, _ := FilterFeasible(u, []model.ContainerType{ct})
	assert.Len(t, feasible, 1)

	u[0].GapLength = 0.5
	feasible, overflow := FilterFeasible(u, []model.ContainerType{ct})
	assert.Empty(t, feasible)
	assert.Len(t, overflow, 1)
}

func TestFilterFeasible_PreservesOrder(t *testing.T) {
	pool := append(units("A", 1, 1, 1, 1, 2), units("Big", 1, 1, 5, 1, 1)...)
	pool = append(pool, units("B", 1, 1, 1, 1, 2)...)

	feasible, overflow := FilterFeasible(pool, []model.ContainerType{catalogType(t, "20_dv_iso")})

	require.Len(t, feasible, 4)
	assert.Equal(t, []string{"A_0", "A_1", "B_0", "B_1"},
		[]string{feasible[0].ID, feasible[1].ID, feasible[2].ID, feasible[3].ID})
	require.Len(t, overflow, 1)
	assert.Equal(t, "Big_0", overflow[0].Unit.ID)
}
