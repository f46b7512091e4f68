package model

import (
	"math"
	"testing"
)

func TestCalculateLoadEstimate_Basic(t *testing.T) {
	ct := ContainerType{ID: "box", Length: 10, Width: 2, Height: 2, MaxWeight: 10000}
	// 20 units of 1 m³ against a 40 m³ box
	cargo := []CargoTemplate{NewCargoTemplate("Cube", 1, 1, 1, 100, 20)}

	est := CalculateLoadEstimate(cargo, ct, 0)

	if est.TotalVolume != 20 {
		t.Errorf("expected total volume 20, got %f", est.TotalVolume)
	}
	if est.ByVolumeExact != 0.5 {
		t.Errorf("expected exact 0.5, got %f", est.ByVolumeExact)
	}
	if est.ByVolume != 1 {
		t.Errorf("expected 1 by volume, got %d", est.ByVolume)
	}
	if est.ByWeight != 1 {
		t.Errorf("expected 1 by weight, got %d", est.ByWeight)
	}
	if est.ContainersRequired != 1 {
		t.Errorf("expected 1 container, got %d", est.ContainersRequired)
	}
	if est.LoadingMeters != 10 {
		t.Errorf("expected 10 loading metres, got %f", est.LoadingMeters)
	}
}

func TestCalculateLoadEstimate_WeightBound(t *testing.T) {
	ct := *FindContainer(DefaultCatalog(), "20_dv_iso")
	cargo := []CargoTemplate{NewCargoTemplate("Steel", 1, 1, 1, 2000, 20)}

	est := CalculateLoadEstimate(cargo, ct, 10)

	// 40000 kg / 28200 kg
	if est.ByWeight != 2 {
		t.Errorf("expected 2 by weight, got %d", est.ByWeight)
	}
	if est.ContainersRequired != 2 {
		t.Errorf("expected weight to drive the count to 2, got %d", est.ContainersRequired)
	}
}

func TestCalculateLoadEstimate_Stowage(t *testing.T) {
	ct := ContainerType{ID: "box", Length: 10, Width: 1, Height: 1}
	cargo := []CargoTemplate{NewCargoTemplate("Cube", 1, 1, 1, 1, 9)}

	est := CalculateLoadEstimate(cargo, ct, 20)

	if est.ByVolume != 1 {
		t.Errorf("expected 1 by volume, got %d", est.ByVolume)
	}
	// 0.9 * 1.2 = 1.08 -> 2
	if est.WithStowage != 2 {
		t.Errorf("expected 2 with stowage, got %d", est.WithStowage)
	}
	if est.ByWeight != 0 {
		t.Errorf("unlimited weight should not bound the count, got %d", est.ByWeight)
	}
}

func TestCalculateLoadEstimate_GapsCountTowardsVolume(t *testing.T) {
	ct := ContainerType{ID: "box", Length: 10, Width: 2, Height: 1}
	c := NewCargoTemplate("Spaced", 1, 1, 1, 1, 1)
	c.GapLength = 0.5

	est := CalculateLoadEstimate([]CargoTemplate{c}, ct, 0)
	if math.Abs(est.TotalVolume-1.5) > 0.001 {
		t.Errorf("expected 1.5 m³ including gap, got %f", est.TotalVolume)
	}
}

func TestCalculateLoadEstimate_ZeroVolumeContainer(t *testing.T) {
	est := CalculateLoadEstimate([]CargoTemplate{NewCargoTemplate("A", 1, 1, 1, 1, 1)}, ContainerType{}, 0)
	if est.ContainersRequired != 0 {
		t.Errorf("expected 0 for degenerate container, got %d", est.ContainersRequired)
	}
}
