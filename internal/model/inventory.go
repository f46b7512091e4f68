package model

import "github.com/google/uuid"

// CargoPreset is a reusable cargo definition, e.g. a standard pallet.
type CargoPreset struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Length    float64 `json:"length" yaml:"length"`
	Width     float64 `json:"width" yaml:"width"`
	Height    float64 `json:"height" yaml:"height"`
	Weight    float64 `json:"weight" yaml:"weight"`
	Stackable bool    `json:"stackable" yaml:"stackable"`
	Rotatable bool    `json:"rotatable" yaml:"rotatable"`
}

// NewCargoPreset creates a new CargoPreset with a generated ID.
func NewCargoPreset(name string, l, w, h, weight float64, stackable, rotatable bool) CargoPreset {
	return CargoPreset{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Length:    l,
		Width:     w,
		Height:    h,
		Weight:    weight,
		Stackable: stackable,
		Rotatable: rotatable,
	}
}

// ToTemplate converts the preset into a cargo line with the given quantity.
func (cp CargoPreset) ToTemplate(qty int) CargoTemplate {
	t := NewCargoTemplate(cp.Name, cp.Length, cp.Width, cp.Height, cp.Weight, qty)
	t.Stackable = cp.Stackable
	t.Rotatable = cp.Rotatable
	return t
}

// Inventory holds the user's saved container types and cargo presets.
type Inventory struct {
	Containers []ContainerType `json:"containers" yaml:"containers"`
	Cargo      []CargoPreset   `json:"cargo" yaml:"cargo"`
}

// DefaultInventory returns an inventory populated with common pallet sizes.
func DefaultInventory() Inventory {
	return Inventory{
		Containers: []ContainerType{},
		Cargo: []CargoPreset{
			NewCargoPreset("EUR Pallet 1200x800", 1.2, 0.8, 1.2, 500, true, true),
			NewCargoPreset("Industrial Pallet 1200x1000", 1.2, 1.0, 1.2, 700, true, true),
			NewCargoPreset("US Pallet 48x40", 1.219, 1.016, 1.2, 600, true, true),
			NewCargoPreset("Half Pallet 800x600", 0.8, 0.6, 1.0, 250, true, true),
			NewCargoPreset("IBC Tote 1000L", 1.2, 1.0, 1.16, 1100, false, false),
			NewCargoPreset("Drum 200L", 0.6, 0.6, 0.9, 230, true, false),
		},
	}
}

// FindContainerByID returns a pointer to the custom container with the given ID, or nil.
func (inv *Inventory) FindContainerByID(id string) *ContainerType {
	return FindContainer(inv.Containers, id)
}

// FindCargoByID returns a pointer to the cargo preset with the given ID, or nil.
func (inv *Inventory) FindCargoByID(id string) *CargoPreset {
	for i := range inv.Cargo {
		if inv.Cargo[i].ID == id {
			return &inv.Cargo[i]
		}
	}
	return nil
}

// CargoNames returns the cargo preset names in order.
func (inv *Inventory) CargoNames() []string {
	names := make([]string, len(inv.Cargo))
	for i, c := range inv.Cargo {
		names[i] = c.Name
	}
	return names
}

// FindCargoByName returns a pointer to the first cargo preset with the given name, or nil.
func (inv *Inventory) FindCargoByName(name string) *CargoPreset {
	for i := range inv.Cargo {
		if inv.Cargo[i].Name == name {
			return &inv.Cargo[i]
		}
	}
	return nil
}

// UpsertContainer adds a custom container type or replaces the one with the
// same ID. It returns true when an existing entry was replaced.
func (inv *Inventory) UpsertContainer(ct ContainerType) bool {
	for i := range inv.Containers {
		if inv.Containers[i].ID == ct.ID {
			inv.Containers[i] = ct
			return true
		}
	}
	inv.Containers = append(inv.Containers, ct)
	return false
}
