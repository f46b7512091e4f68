package engine

import (
	"math"
	"sort"
)

// anchor is a candidate placement origin.
type anchor struct {
	x, y, z float64
}

func (a anchor) onFloor() bool {
	return a.y <= Epsilon
}

func (a anchor) equals(b anchor) bool {
	return math.Abs(a.x-b.x) <= Epsilon &&
		math.Abs(a.y-b.y) <= Epsilon &&
		math.Abs(a.z-b.z) <= Epsilon
}

// anchorSet is the ordered candidate set owned by one packing call.
type anchorSet struct {
	points []anchor
}

// newAnchorSet returns a set seeded with the container origin.
func newAnchorSet() *anchorSet {
	return &anchorSet{points: []anchor{{0, 0, 0}}}
}

// add inserts a point unless an equal one is already present.
func (s *anchorSet) add(p anchor) {
	for _, q := range s.points {
		if q.equals(p) {
			return
		}
	}
	s.points = append(s.points, p)
}

func (s *anchorSet) removeAt(i int) {
	s.points = append(s.points[:i], s.points[i+1:]...)
}

// removeEnclosed drops every point inside b.
func (s *anchorSet) removeEnclosed(b box) {
	kept := s.points[:0]
	for _, p := range s.points {
		if !b.encloses(p) {
			kept = append(kept, p)
		}
	}
	s.points = kept
}

// sort orders points bottom-up, back-to-front, left-to-right.
func (s *anchorSet) sort() {
	sort.SliceStable(s.points, func(i, j int) bool {
		a, b := s.points[i], s.points[j]
		if math.Abs(a.y-b.y) > Epsilon {
			return a.y < b.y
		}
		if math.Abs(a.z-b.z) > Epsilon {
			return a.z < b.z
		}
		return a.x < b.x
	})
}

func (s *anchorSet) len() int {
	return len(s.points)
}
