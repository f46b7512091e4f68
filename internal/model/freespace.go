package model

import "sort"

// FreeSpace describes a usable empty region left in a committed container.
type FreeSpace struct {
	ContainerSeq int     `json:"container_seq"`
	Position     string  `json:"position"` // "front", "rear", "side", "top"
	X            float64 `json:"x"`
	Z            float64 `json:"z"`
	Length       float64 `json:"length"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
}

// Volume returns the volume of the free region.
func (f FreeSpace) Volume() float64 {
	return f.Length * f.Width * f.Height
}

// MinFreeDimension is the smallest length, width or height (m) for a region to
// be reported as usable. Anything thinner is dunnage space.
const MinFreeDimension = 0.3

// DetectFreeSpace reports the empty slabs around the load's bounding box in a
// container: in front of and behind the load, beside it, and above it.
// Units overhanging the physical walls leave no free space on that side.
func DetectFreeSpace(ci ContainerInstance) []FreeSpace {
	L, W, H := ci.Type.Length, ci.Type.Width, ci.Type.Height

	if len(ci.Units) == 0 {
		return []FreeSpace{{
			ContainerSeq: ci.Seq,
			Position:     "rear",
			Length:       L,
			Width:        W,
			Height:       H,
		}}
	}

	minX, minZ := ci.Units[0].X, ci.Units[0].Z
	var maxX, maxZ, maxY float64
	for _, u := range ci.Units {
		if u.X < minX {
			minX = u.X
		}
		if u.Z < minZ {
			minZ = u.Z
		}
		if right := u.X + u.PlacedLength(); right > maxX {
			maxX = right
		}
		if side := u.Z + u.PlacedWidth(); side > maxZ {
			maxZ = side
		}
		if top := u.Top(); top > maxY {
			maxY = top
		}
	}

	var spaces []FreeSpace
	add := func(pos string, x, z, l, w, h float64) {
		if l >= MinFreeDimension && w >= MinFreeDimension && h >= MinFreeDimension {
			spaces = append(spaces, FreeSpace{
				ContainerSeq: ci.Seq,
				Position:     pos,
				X:            round3(x),
				Z:            round3(z),
				Length:       round3(l),
				Width:        round3(w),
				Height:       round3(h),
			})
		}
	}

	// Door end and nose end of the box
	add("rear", 0, 0, minX, W, H)
	add("front", maxX, 0, L-maxX, W, H)

	// Lateral slab next to the load, limited to the load's length
	loadL := maxX - minX
	if maxZ < W {
		add("side", minX, maxZ, loadL, W-maxZ, H)
	}
	if minZ > 0 {
		add("side", minX, 0, loadL, minZ, H)
	}

	// Headroom over the load
	add("top", minX, 0, loadL, W, H-maxY)

	sort.SliceStable(spaces, func(i, j int) bool {
		return spaces[i].Volume() > spaces[j].Volume()
	})
	return spaces
}

// DetectAllFreeSpace finds free regions across every container of a fleet.
func DetectAllFreeSpace(result FleetResult) []FreeSpace {
	var all []FreeSpace
	for _, c := range result.Containers {
		all = append(all, DetectFreeSpace(c)...)
	}
	return all
}

// TotalFreeVolume returns the summed volume of free regions.
func TotalFreeVolume(spaces []FreeSpace) float64 {
	var total float64
	for _, s := range spaces {
		total += s.Volume()
	}
	return total
}
