package model

import "math"

// LoadEstimate holds a quick lower-bound calculation of how many containers of
// one type a cargo list needs, before running the full planner.
type LoadEstimate struct {
	ContainerID        string  `json:"container_id"`
	TotalVolume        float64 `json:"total_volume"`         // Cargo volume including clearance gaps (m³)
	TotalWeight        float64 `json:"total_weight"`         // kg
	ContainerVolume    float64 `json:"container_volume"`     // Interior volume of one container (m³)
	ByVolumeExact      float64 `json:"by_volume_exact"`      // Fractional containers by volume
	ByVolume           int     `json:"by_volume"`            // Ceiling of exact volume count
	ByWeight           int     `json:"by_weight"`            // Containers forced by the weight limit
	WithStowage        int     `json:"with_stowage"`         // Volume count after the stowage factor
	StowageFactor      float64 `json:"stowage_factor"`       // Expected broken-stowage loss (e.g. 15 for 15%)
	ContainersRequired int     `json:"containers_required"`  // max(WithStowage, ByWeight)
	LoadingMeters      float64 `json:"loading_meters"`       // Floor length consumed if nothing were stacked
}

// CalculateLoadEstimate computes how many containers of a type a cargo list
// needs by volume and by weight. stowagePercent accounts for the space lost
// between irregular units.
func CalculateLoadEstimate(cargo []CargoTemplate, ct ContainerType, stowagePercent float64) LoadEstimate {
	var totalVolume, totalWeight, floorArea float64
	for _, t := range cargo {
		fl := t.Length + t.GapLength
		fw := t.Width + t.GapWidth
		totalVolume += fl * fw * t.Height * float64(t.Quantity)
		totalWeight += t.Weight * float64(t.Quantity)
		floorArea += fl * fw * float64(t.Quantity)
	}

	est := LoadEstimate{
		ContainerID:   ct.ID,
		TotalVolume:   totalVolume,
		TotalWeight:   totalWeight,
		StowageFactor: stowagePercent,
	}
	if ct.Width > 0 {
		est.LoadingMeters = floorArea / ct.Width
	}

	containerVolume := ct.Volume()
	if containerVolume <= 0 {
		return est
	}
	est.ContainerVolume = containerVolume

	est.ByVolumeExact = totalVolume / containerVolume
	est.ByVolume = int(math.Ceil(est.ByVolumeExact))

	stowage := 1.0 + (stowagePercent / 100.0)
	est.WithStowage = int(math.Ceil(est.ByVolumeExact * stowage))
	if est.WithStowage < est.ByVolume {
		est.WithStowage = est.ByVolume
	}

	if ct.MaxWeight > 0 {
		est.ByWeight = int(math.Ceil(totalWeight / ct.MaxWeight))
	}

	est.ContainersRequired = est.WithStowage
	if est.ByWeight > est.ContainersRequired {
		est.ContainersRequired = est.ByWeight
	}
	return est
}
