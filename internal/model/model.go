package model

import (
	"fmt"
	"math"
	"strings"
)

// SelectionMetric decides which candidate wins a fleet round when no
// container type packs the whole remaining pool.
type SelectionMetric string

const (
	MetricCount  SelectionMetric = "count"  // Most units packed
	MetricVolume SelectionMetric = "volume" // Most cargo volume packed
)

// ParseSelectionMetric converts a configuration string into a metric.
func ParseSelectionMetric(s string) (SelectionMetric, error) {
	switch SelectionMetric(strings.ToLower(strings.TrimSpace(s))) {
	case "", MetricCount:
		return MetricCount, nil
	case MetricVolume:
		return MetricVolume, nil
	default:
		return MetricCount, fmt.Errorf("unknown selection metric %q", s)
	}
}

// DefaultRoundCap bounds the number of containers a single plan may open.
const DefaultRoundCap = 500

// PlanSettings holds planner configuration.
type PlanSettings struct {
	Metric   SelectionMetric `json:"metric" yaml:"metric"`
	RoundCap int             `json:"round_cap" yaml:"round_cap"`
}

func DefaultSettings() PlanSettings {
	return PlanSettings{
		Metric:   MetricCount,
		RoundCap: DefaultRoundCap,
	}
}

// ContainerInstance is one committed container with its placed units.
type ContainerInstance struct {
	Seq     int             `json:"seq"`
	Type    ContainerType   `json:"type"`
	Units   []PlacementUnit `json:"units"`
	Warning string          `json:"warning,omitempty"`
}

// Label returns the display name used in manifests, e.g. "Container #2".
func (ci ContainerInstance) Label() string {
	return fmt.Sprintf("Container #%d", ci.Seq)
}

// TotalWeight returns the summed weight of placed units.
func (ci ContainerInstance) TotalWeight() float64 {
	var total float64
	for _, u := range ci.Units {
		total += u.Weight
	}
	return total
}

// UsedVolume returns the summed physical volume of placed units.
func (ci ContainerInstance) UsedVolume() float64 {
	var total float64
	for _, u := range ci.Units {
		total += u.Volume()
	}
	return total
}

// VolumeUtilization returns used volume as a percentage of interior volume.
func (ci ContainerInstance) VolumeUtilization() float64 {
	v := ci.Type.Volume()
	if v == 0 {
		return 0
	}
	return (ci.UsedVolume() / v) * 100.0
}

// WeightUtilization returns the payload as a percentage of the weight limit.
func (ci ContainerInstance) WeightUtilization() float64 {
	if ci.Type.MaxWeight <= 0 {
		return 0
	}
	return (ci.TotalWeight() / ci.Type.MaxWeight) * 100.0
}

// BalanceTolerance is the largest allowed distance of the centre of gravity
// from mid-length, as a share of length.
const BalanceTolerance = 0.10

// CenterOfGravity returns the weight-averaged longitudinal centre of units as
// a percentage of length. Zero when there is no weight or no length.
func CenterOfGravity(units []PlacementUnit, length float64) float64 {
	var total, moment float64
	for _, u := range units {
		total += u.Weight
		moment += (u.X + u.PlacedLength()/2) * u.Weight
	}
	if total == 0 || length == 0 {
		return 0
	}
	return (moment / total) / length * 100.0
}

// BalancedCOG reports whether a centre of gravity, in percent of length, is
// within tolerance of the middle.
func BalancedCOG(cog float64) bool {
	return math.Abs(cog-50) <= BalanceTolerance*100
}

// CenterOfGravity returns the weighted longitudinal centre of the load as a
// percentage of the container's physical length.
func (ci ContainerInstance) CenterOfGravity() float64 {
	return CenterOfGravity(ci.Units, ci.Type.Length)
}

// IsBalanced reports whether the centre of gravity sits within 40-60% of length.
func (ci ContainerInstance) IsBalanced() bool {
	return len(ci.Units) > 0 && BalancedCOG(ci.CenterOfGravity())
}

// OverflowRecord is a unit that could not be assigned to any container.
type OverflowRecord struct {
	Unit   PlacementUnit `json:"unit"`
	Reason string        `json:"reason"`
}

// FleetResult holds the full solution.
type FleetResult struct {
	Containers []ContainerInstance `json:"containers"`
	Overflow   []OverflowRecord    `json:"overflow"`
}

// PlacedCount returns the number of units placed across all containers.
func (fr FleetResult) PlacedCount() int {
	n := 0
	for _, c := range fr.Containers {
		n += len(c.Units)
	}
	return n
}

// TotalWeight returns the placed weight across all containers.
func (fr FleetResult) TotalWeight() float64 {
	var total float64
	for _, c := range fr.Containers {
		total += c.TotalWeight()
	}
	return total
}

// MeanUtilization returns the average volume utilisation of the fleet.
func (fr FleetResult) MeanUtilization() float64 {
	if len(fr.Containers) == 0 {
		return 0
	}
	var sum float64
	for _, c := range fr.Containers {
		sum += c.VolumeUtilization()
	}
	return sum / float64(len(fr.Containers))
}

// TypeCounts returns how many containers of each type the fleet uses, keyed by
// type name, plus the names in first-use order.
func (fr FleetResult) TypeCounts() (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string
	for _, c := range fr.Containers {
		if _, ok := counts[c.Type.Name]; !ok {
			order = append(order, c.Type.Name)
		}
		counts[c.Type.Name]++
	}
	return counts, order
}

// Warnings returns every non-empty container warning prefixed with its label.
func (fr FleetResult) Warnings() []string {
	var out []string
	for _, c := range fr.Containers {
		if c.Warning != "" {
			out = append(out, c.Label()+": "+c.Warning)
		}
	}
	return out
}

// round3 rounds to millimetre precision for display.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Project ties everything together for save/load.
type Project struct {
	Name         string          `json:"name" yaml:"name"`
	Cargo        []CargoTemplate `json:"cargo" yaml:"cargo"`
	ContainerIDs []string        `json:"container_ids" yaml:"container_ids"`
	Custom       []ContainerType `json:"custom_containers,omitempty" yaml:"custom_containers,omitempty"`
	Settings     PlanSettings    `json:"settings" yaml:"settings"`
	Result       *FleetResult    `json:"result,omitempty" yaml:"-"`
}

func NewProject() Project {
	return Project{
		Name:         "Untitled",
		Cargo:        []CargoTemplate{},
		ContainerIDs: []string{DefaultCatalog()[0].ID},
		Settings:     DefaultSettings(),
	}
}

// Catalog returns the built-in catalog followed by the project's custom types.
func (p Project) Catalog() []ContainerType {
	return append(DefaultCatalog(), p.Custom...)
}
