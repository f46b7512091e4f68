package engine

import (
	"math"

	"github.com/piwi3910/CargoLoad/internal/model"
)

// box is an axis-aligned volume. x runs along the length, y is vertical and
// z runs across the width.
type box struct {
	x, y, z float64
	l, h, w float64
}

// footprintBox returns the unit's volume with its clearance gaps included.
func footprintBox(u model.PlacementUnit) box {
	return box{x: u.X, y: u.Y, z: u.Z, l: u.FootprintLength(), h: u.Height, w: u.FootprintWidth()}
}

// physicalBox returns the unit's volume without clearance gaps.
func physicalBox(u model.PlacementUnit) box {
	return box{x: u.X, y: u.Y, z: u.Z, l: u.PlacedLength(), h: u.Height, w: u.PlacedWidth()}
}

// overlap returns the length of the intersection of [a0,a1) and [b0,b1).
func overlap(a0, a1, b0, b1 float64) float64 {
	return math.Max(0, math.Min(a1, b1)-math.Max(a0, b0))
}

func (b box) overlapX(o box) float64 { return overlap(b.x, b.x+b.l, o.x, o.x+o.l) }
func (b box) overlapY(o box) float64 { return overlap(b.y, b.y+b.h, o.y, o.y+o.h) }
func (b box) overlapZ(o box) float64 { return overlap(b.z, b.z+b.w, o.z, o.z+o.w) }

// boxesOverlap returns true if two boxes share volume (not just touch).
func boxesOverlap(a, b box) bool {
	return a.x < b.x+b.l-Epsilon && a.x+a.l > b.x+Epsilon &&
		a.y < b.y+b.h-Epsilon && a.y+a.h > b.y+Epsilon &&
		a.z < b.z+b.w-Epsilon && a.z+a.w > b.z+Epsilon
}

// baseOverlap returns the horizontal area shared by two boxes.
func baseOverlap(a, b box) float64 {
	return a.overlapX(b) * a.overlapZ(b)
}

// encloses reports whether the point lies inside the box, lower faces
// inclusive and upper faces exclusive.
func (b box) encloses(p anchor) bool {
	return p.x >= b.x-Epsilon && p.x < b.x+b.l-Epsilon &&
		p.y >= b.y-Epsilon && p.y < b.y+b.h-Epsilon &&
		p.z >= b.z-Epsilon && p.z < b.z+b.w-Epsilon
}
