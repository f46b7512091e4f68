package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/CargoLoad/internal/model"
)

// PackResult is the outcome of packing one container.
type PackResult struct {
	Packed   []model.PlacementUnit
	Unplaced []model.PlacementUnit
	Warnings []string
	Weight   float64
}

// PackedVolume returns the summed physical volume of packed units.
func (r PackResult) PackedVolume() float64 {
	var v float64
	for _, u := range r.Packed {
		v += u.Volume()
	}
	return v
}

// containerPacker holds the state of a single PackContainer call.
type containerPacker struct {
	caps    model.Capabilities
	anchors *anchorSet
	packed  []model.PlacementUnit
	weight  float64
}

// PackContainer places as many units from pool as it can into one container
// of type ct. The pool is not modified; placed copies carry their resolved
// coordinates and rotation.
func PackContainer(ct model.ContainerType, pool []model.PlacementUnit) PackResult {
	items := make([]model.PlacementUnit, len(pool))
	copy(items, pool)
	sortByPriority(items)

	p := &containerPacker{
		caps:    model.Classify(ct),
		anchors: newAnchorSet(),
	}

	var result PackResult
	for _, item := range items {
		if p.weight+item.Weight > p.caps.MaxWeight {
			result.Unplaced = append(result.Unplaced, item)
			continue
		}
		if !p.place(item) {
			result.Unplaced = append(result.Unplaced, item)
		}
	}

	p.centerLongitudinally()
	p.centerLaterally()
	if w := p.balanceWarning(); w != "" {
		result.Warnings = append(result.Warnings, w)
	}

	result.Packed = p.packed
	result.Weight = p.weight
	return result
}

// sortByPriority orders units stackable first, then by descending volume,
// then by descending largest dimension.
func sortByPriority(units []model.PlacementUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		a, b := units[i], units[j]
		if a.Stackable != b.Stackable {
			return a.Stackable
		}
		if va, vb := a.Volume(), b.Volume(); va != vb {
			return va > vb
		}
		return a.MaxDimension() > b.MaxDimension()
	})
}

// place searches the anchors for the first valid position of item and commits
// it. Returns false if no anchor and orientation works.
func (p *containerPacker) place(item model.PlacementUnit) bool {
	p.anchors.sort()

	orientations := []bool{false}
	if item.Rotatable {
		orientations = append(orientations, true)
	}

	for i := 0; i < p.anchors.len(); i++ {
		a := p.anchors.points[i]
		if a.onFloor() && (a.x >= p.caps.PhysLength-Epsilon || a.z >= p.caps.PhysWidth-Epsilon) {
			continue
		}
		for _, rotated := range orientations {
			cand := item
			cand.X, cand.Y, cand.Z = a.x, a.y, a.z
			cand.Rotated = rotated

			if !p.inBounds(cand) || !p.valid(cand) {
				continue
			}
			p.commit(p.recenter(cand), i)
			return true
		}
	}
	return false
}

// inBounds checks the gap-inclusive footprint against the effective bounds.
func (p *containerPacker) inBounds(u model.PlacementUnit) bool {
	return u.X+u.FootprintLength() <= p.caps.EffLength+Epsilon &&
		u.Y+u.Height <= p.caps.EffHeight+Epsilon &&
		u.Z+u.FootprintWidth() <= p.caps.EffWidth+Epsilon
}

func (p *containerPacker) valid(u model.PlacementUnit) bool {
	return !p.collides(u) && !p.protrusionConflict(u) && p.supported(u)
}

// collides reports a 3D overlap with any packed unit. Horizontal extents
// include clearance gaps.
func (p *containerPacker) collides(u model.PlacementUnit) bool {
	nb := footprintBox(u)
	for _, q := range p.packed {
		if boxesOverlap(nb, footprintBox(q)) {
			return true
		}
	}
	return false
}

// protrusionConflict applies the lane rules of open equipment: a unit wider
// than the deck owns its whole length span at its height, and a unit longer
// than the deck owns its whole width span.
func (p *containerPacker) protrusionConflict(u model.PlacementUnit) bool {
	if !p.caps.Special {
		return false
	}
	nb := physicalBox(u)
	nProtL, nProtW := p.protrudes(nb)
	for _, q := range p.packed {
		qb := physicalBox(q)
		qProtL, qProtW := p.protrudes(qb)
		if (nProtW || qProtW) && nb.overlapX(qb) > Epsilon && nb.overlapY(qb) > Epsilon {
			return true
		}
		if (nProtL || qProtL) && nb.overlapZ(qb) > Epsilon && nb.overlapY(qb) > Epsilon {
			return true
		}
	}
	return false
}

func (p *containerPacker) protrudes(b box) (length, width bool) {
	return b.l > p.caps.PhysLength+Epsilon, b.w > p.caps.PhysWidth+Epsilon
}

// supported applies the stacking rules.
func (p *containerPacker) supported(u model.PlacementUnit) bool {
	nb := physicalBox(u)
	onFloor := u.Y <= Epsilon

	if u.Height > p.caps.PhysHeight+Epsilon && !onFloor {
		return false
	}

	if onFloor {
		if !p.caps.Special {
			return nb.x >= -Epsilon && nb.z >= -Epsilon &&
				nb.x+nb.l <= p.caps.PhysLength+Epsilon &&
				nb.z+nb.w <= p.caps.PhysWidth+Epsilon
		}
		deck := box{l: p.caps.PhysLength, h: p.caps.PhysHeight, w: p.caps.PhysWidth}
		if baseOverlap(nb, deck) < AntiFloatingRatio*nb.l*nb.w-Epsilon {
			return false
		}
		cx, cz := nb.x+nb.l/2, nb.z+nb.w/2
		return cx >= -Epsilon && cx <= p.caps.PhysLength+Epsilon &&
			cz >= -Epsilon && cz <= p.caps.PhysWidth+Epsilon
	}

	var area float64
	for _, q := range p.packed {
		if math.Abs(q.Top()-u.Y) >= Epsilon {
			continue
		}
		qb := physicalBox(q)
		if nb.overlapX(qb) <= Epsilon || nb.overlapZ(qb) <= Epsilon {
			continue
		}
		if !q.Stackable {
			return false
		}
		area += baseOverlap(nb, qb)
	}
	return area >= SupportRatio*nb.l*nb.w-Epsilon
}

// recenter moves a unit wider or longer than the deck to the middle of the
// deck on that axis. The original position is kept if the centred one is not
// valid.
func (p *containerPacker) recenter(u model.PlacementUnit) model.PlacementUnit {
	moved := u
	if l := u.PlacedLength(); l > p.caps.PhysLength+Epsilon {
		moved.X = (p.caps.PhysLength - l) / 2
	}
	if w := u.PlacedWidth(); w > p.caps.PhysWidth+Epsilon {
		moved.Z = (p.caps.PhysWidth - w) / 2
	}
	if moved.X == u.X && moved.Z == u.Z {
		return u
	}
	if p.inBounds(moved) && p.valid(moved) {
		return moved
	}
	return u
}

// commit records the placement and updates the anchors. used is the index of
// the consumed anchor.
func (p *containerPacker) commit(u model.PlacementUnit, used int) {
	p.packed = append(p.packed, u)
	p.weight += u.Weight

	fb := footprintBox(u)
	p.anchors.removeAt(used)
	p.anchors.add(anchor{fb.x + fb.l, fb.y, fb.z})
	p.anchors.add(anchor{fb.x, fb.y + fb.h, fb.z})
	p.anchors.add(anchor{fb.x, fb.y, fb.z + fb.w})
	p.anchors.removeEnclosed(fb)
}

// centerLongitudinally shifts the load forward by half the free length.
// Free length is measured past the gap-inclusive footprints so clearance stays
// inside the container.
func (p *containerPacker) centerLongitudinally() {
	if len(p.packed) == 0 {
		return
	}
	var maxX float64
	for _, u := range p.packed {
		maxX = math.Max(maxX, u.X+u.FootprintLength())
	}
	free := p.caps.PhysLength - maxX
	if free <= CenteringThreshold {
		return
	}
	for i := range p.packed {
		p.packed[i].X += free / 2
	}
}

// centerLaterally centres the load across the width unless a unit already
// overhangs a side wall.
func (p *containerPacker) centerLaterally() {
	if len(p.packed) == 0 {
		return
	}
	minZ := p.packed[0].Z
	var maxZ float64
	for _, u := range p.packed {
		minZ = math.Min(minZ, u.Z)
		maxZ = math.Max(maxZ, u.Z+u.FootprintWidth())
	}
	if minZ < -Epsilon {
		return
	}
	free := p.caps.PhysWidth - maxZ
	if free <= CenteringThreshold {
		return
	}
	for i := range p.packed {
		p.packed[i].Z += free / 2
	}
}

// balanceWarning returns a warning when the weighted longitudinal centre is
// too far from the middle of the container.
func (p *containerPacker) balanceWarning() string {
	if len(p.packed) == 0 || p.weight <= 0 {
		return ""
	}
	cog := model.CenterOfGravity(p.packed, p.caps.PhysLength)
	if model.BalancedCOG(cog) {
		return ""
	}
	return fmt.Sprintf("Load unbalanced: centre of gravity at %.1f%% of length", cog)
}
