package engine

import (
	"math"

	"github.com/piwi3910/CargoLoad/internal/model"
)

// fitsType reports whether a unit could ever be placed in a container with
// the given capabilities, in either allowed orientation, weight included.
func fitsType(u model.PlacementUnit, caps model.Capabilities) bool {
	if u.Weight > caps.MaxWeight {
		return false
	}
	fl := u.Length + u.GapLength
	fw := u.Width + u.GapWidth
	if u.Height > caps.EffHeight+Epsilon {
		return false
	}
	if fl <= caps.EffLength+Epsilon && fw <= caps.EffWidth+Epsilon {
		return true
	}
	return u.Rotatable && fw <= caps.EffLength+Epsilon && fl <= caps.EffWidth+Epsilon
}

// FilterFeasible splits units into those that fit at least one of the given
// container types and overflow records for the rest. Input order is kept in
// both outputs.
func FilterFeasible(units []model.PlacementUnit, types []model.ContainerType) ([]model.PlacementUnit, []model.OverflowRecord) {
	caps := make([]model.Capabilities, len(types))
	for i, ct := range types {
		caps[i] = model.Classify(ct)
	}

	var feasible []model.PlacementUnit
	var overflow []model.OverflowRecord
	for _, u := range units {
		ok := false
		for _, c := range caps {
			if fitsType(u, c) {
				ok = true
				break
			}
		}
		if ok {
			feasible = append(feasible, u)
		} else {
			overflow = append(overflow, model.OverflowRecord{Unit: u, Reason: OverflowReason(u, types)})
		}
	}
	return feasible, overflow
}

// OverflowReason explains why a unit fits none of the given container types.
// Checks run in a fixed order and the first failing bound wins.
func OverflowReason(u model.PlacementUnit, types []model.ContainerType) string {
	if len(types) == 0 {
		return ReasonNoContainer
	}

	var maxEffL, maxPhysH, maxPhysW, maxWeight float64
	var topOpen, sideOpen bool
	for _, ct := range types {
		c := model.Classify(ct)
		maxEffL = math.Max(maxEffL, c.EffLength)
		maxPhysH = math.Max(maxPhysH, c.PhysHeight)
		maxPhysW = math.Max(maxPhysW, c.PhysWidth)
		maxWeight = math.Max(maxWeight, c.MaxWeight)
		topOpen = topOpen || c.TopOverhang
		sideOpen = sideOpen || c.SideOverhang
	}

	// A rotatable unit runs its longest side along the container and its
	// shortest side across it.
	fl := u.Length + u.GapLength
	fw := u.Width + u.GapWidth
	longest, across := fl, fw
	if u.Rotatable {
		longest = math.Max(fl, fw)
		across = math.Min(fl, fw)
	}

	switch {
	case longest > maxEffL+Epsilon:
		return ReasonTooLong
	case u.Height > maxPhysH+Epsilon && !topOpen:
		return ReasonTooTall
	case across > maxPhysW+Epsilon && !sideOpen:
		return ReasonTooWide
	case u.Weight > maxWeight:
		return ReasonTooHeavy
	}
	return ReasonNoSpace
}
