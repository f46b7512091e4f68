package model

import (
	"fmt"
	"strings"
)

// Equipment is the structural category of a container type.
type Equipment int

const (
	EquipmentStandard Equipment = iota // Closed box: dry van, high cube, reefer, trailer
	EquipmentOpenTop                   // No roof, cargo may protrude upwards
	EquipmentFlatRack                  // No roof and no side walls
)

func (e Equipment) String() string {
	switch e {
	case EquipmentOpenTop:
		return "open_top"
	case EquipmentFlatRack:
		return "flat_rack"
	default:
		return "standard"
	}
}

// MarshalText implements encoding.TextMarshaler so JSON and YAML carry the name.
func (e Equipment) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Equipment) UnmarshalText(text []byte) error {
	eq, err := ParseEquipment(string(text))
	if err != nil {
		return err
	}
	*e = eq
	return nil
}

// ParseEquipment converts a category name into an Equipment value.
// The short ISO codes "OT" and "FR" are accepted as well.
func ParseEquipment(s string) (Equipment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "std", "dv", "hc":
		return EquipmentStandard, nil
	case "open_top", "opentop", "open top", "ot":
		return EquipmentOpenTop, nil
	case "flat_rack", "flatrack", "flat rack", "fr":
		return EquipmentFlatRack, nil
	default:
		return EquipmentStandard, fmt.Errorf("unknown equipment %q", s)
	}
}

// ContainerType is an immutable catalog entry describing a container's interior.
type ContainerType struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Length       float64   `json:"length" yaml:"length"` // inner length (m)
	Width        float64   `json:"width" yaml:"width"`   // inner width (m)
	Height       float64   `json:"height" yaml:"height"` // inner height (m)
	MaxWeight    float64   `json:"max_weight" yaml:"max_weight"`
	Equipment    Equipment `json:"equipment" yaml:"equipment"`
	TopOverhang  bool      `json:"top_overhang,omitempty" yaml:"top_overhang,omitempty"`
	SideOverhang bool      `json:"side_overhang,omitempty" yaml:"side_overhang,omitempty"`
	Color        string    `json:"color,omitempty" yaml:"color,omitempty"` // UI only
}

// Volume returns the physical interior volume in cubic metres.
func (c ContainerType) Volume() float64 {
	return c.Length * c.Width * c.Height
}

// Validate reports the first problem that would make the type unusable.
// A zero MaxWeight means no weight limit.
func (c ContainerType) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("container %q: id is required", c.Name)
	}
	if c.Length <= 0 || c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("container %q: dimensions must be positive", c.ID)
	}
	if c.MaxWeight < 0 {
		return fmt.Errorf("container %q: max weight must not be negative", c.ID)
	}
	return nil
}

// Overhang allowances used as effective bounds on open equipment.
const (
	UnboundedOverhang     = 50.0
	FlatRackLargeLength   = 16.0
	FlatRackSmallLength   = 7.0
	flatRackLargeMinInner = 10.0
)

// Capabilities is the decoded form of a container type's equipment category
// and overhang flags. All placement logic reads these instead of the raw type.
type Capabilities struct {
	Equipment    Equipment
	Special      bool // open-top or flat-rack
	TopOverhang  bool
	SideOverhang bool

	// Physical interior.
	PhysLength, PhysWidth, PhysHeight float64

	// Bounds used during the placement search.
	EffLength, EffWidth, EffHeight float64

	// MaxWeight is +Inf when the type declares no limit.
	MaxWeight float64
}

// Classify decodes a container type into its capabilities.
func Classify(c ContainerType) Capabilities {
	caps := Capabilities{
		Equipment:    c.Equipment,
		Special:      c.Equipment != EquipmentStandard,
		TopOverhang:  c.TopOverhang || c.Equipment != EquipmentStandard,
		SideOverhang: c.SideOverhang || c.Equipment == EquipmentFlatRack,
		PhysLength:   c.Length,
		PhysWidth:    c.Width,
		PhysHeight:   c.Height,
		EffLength:    c.Length,
		EffWidth:     c.Width,
		EffHeight:    c.Height,
		MaxWeight:    c.MaxWeight,
	}
	if caps.MaxWeight <= 0 {
		caps.MaxWeight = inf
	}

	if c.Equipment == EquipmentFlatRack {
		if strings.Contains(c.ID, "40") || c.Length > flatRackLargeMinInner {
			caps.EffLength = FlatRackLargeLength
		} else {
			caps.EffLength = FlatRackSmallLength
		}
	}
	if caps.SideOverhang {
		caps.EffWidth = UnboundedOverhang
	}
	if caps.TopOverhang {
		caps.EffHeight = UnboundedOverhang
	}
	return caps
}

// IsSpecial reports whether the type is open-top or flat-rack equipment.
func (c ContainerType) IsSpecial() bool {
	return c.Equipment != EquipmentStandard
}

// DefaultCatalog returns the built-in container types.
func DefaultCatalog() []ContainerType {
	return []ContainerType{
		// Standard
		{ID: "20_dv_iso", Name: "20' Standard", Length: 5.898, Width: 2.352, Height: 2.393, MaxWeight: 28200, Color: "#ccebe6"},
		{ID: "40_dv_iso", Name: "40' Standard", Length: 12.032, Width: 2.352, Height: 2.393, MaxWeight: 26600, Color: "#bbf7d0"},
		{ID: "40_hc_iso", Name: "40' High Cube", Length: 12.032, Width: 2.352, Height: 2.698, MaxWeight: 28500, Color: "#fed7aa"},
		// Reefers
		{ID: "20_rf_iso", Name: "20' Reefer", Length: 5.444, Width: 2.268, Height: 2.276, MaxWeight: 27000, Color: "#a5f3fc"},
		{ID: "40_rf_iso", Name: "40' Reefer", Length: 11.583, Width: 2.290, Height: 2.544, MaxWeight: 29000, Color: "#99f6e4"},
		// Trailers
		{ID: "eu_trailer", Name: "EU Trailer", Length: 13.620, Width: 2.480, Height: 2.700, MaxWeight: 24000, Color: "#e2e8f0"},
		// Special
		{ID: "20_ot_iso", Name: "20' Open Top", Length: 5.89, Width: 2.34, Height: 2.34, MaxWeight: 28200, Equipment: EquipmentOpenTop, TopOverhang: true, Color: "#e9d5ff"},
		{ID: "40_ot_iso", Name: "40' Open Top", Length: 12.03, Width: 2.34, Height: 2.34, MaxWeight: 26600, Equipment: EquipmentOpenTop, TopOverhang: true, Color: "#d8b4fe"},
		// Flat racks: the deck length is the strict base
		{ID: "20_fr_iso", Name: "20' Flat Rack", Length: 6.00, Width: 2.40, Height: 2.20, MaxWeight: 30000, Equipment: EquipmentFlatRack, TopOverhang: true, SideOverhang: true, Color: "#fda4af"},
		{ID: "40_fr_iso", Name: "40' Flat Rack", Length: 12.00, Width: 2.40, Height: 2.00, MaxWeight: 40000, Equipment: EquipmentFlatRack, TopOverhang: true, SideOverhang: true, Color: "#fb7185"},
	}
}

// SelectContainers returns the catalog entries whose IDs are listed, in catalog
// order. Unknown IDs are reported in the second return value.
func SelectContainers(catalog []ContainerType, ids []string) ([]ContainerType, []string) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var selected []ContainerType
	for _, c := range catalog {
		if want[c.ID] {
			selected = append(selected, c)
			delete(want, c.ID)
		}
	}
	var unknown []string
	for _, id := range ids {
		if want[id] {
			unknown = append(unknown, id)
			want[id] = false
		}
	}
	return selected, unknown
}

// FindContainer returns a pointer to the catalog entry with the given ID, or nil.
func FindContainer(catalog []ContainerType, id string) *ContainerType {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}
