package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

var inf = math.Inf(1)

// CargoTemplate describes one line of cargo as entered by the user.
type CargoTemplate struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Length    float64 `json:"length" yaml:"length"` // m
	Width     float64 `json:"width" yaml:"width"`   // m
	Height    float64 `json:"height" yaml:"height"` // m
	Weight    float64 `json:"weight" yaml:"weight"` // kg per unit
	Quantity  int     `json:"quantity" yaml:"quantity"`
	Stackable bool    `json:"stackable" yaml:"stackable"`
	Rotatable bool    `json:"rotatable" yaml:"rotatable"`
	GapLength float64 `json:"gap_length,omitempty" yaml:"gap_length,omitempty"` // clearance beyond the unit's length
	GapWidth  float64 `json:"gap_width,omitempty" yaml:"gap_width,omitempty"`   // clearance beyond the unit's width
}

// NewCargoTemplate creates a stackable, rotatable template with a generated ID.
func NewCargoTemplate(name string, l, w, h, weight float64, qty int) CargoTemplate {
	return CargoTemplate{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Length:    l,
		Width:     w,
		Height:    h,
		Weight:    weight,
		Quantity:  qty,
		Stackable: true,
		Rotatable: true,
	}
}

// Volume returns the volume of a single unit.
func (t CargoTemplate) Volume() float64 {
	return t.Length * t.Width * t.Height
}

// Validate reports the first problem that would make the template unusable.
func (t CargoTemplate) Validate() error {
	if t.Length <= 0 || t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("cargo %q: dimensions must be positive", t.Name)
	}
	if t.Weight <= 0 {
		return fmt.Errorf("cargo %q: weight must be positive", t.Name)
	}
	if t.Quantity < 0 {
		return fmt.Errorf("cargo %q: quantity must not be negative", t.Name)
	}
	if t.GapLength < 0 || t.GapWidth < 0 {
		return fmt.Errorf("cargo %q: clearance gaps must not be negative", t.Name)
	}
	return nil
}

// ValidateTemplates validates every template and joins the failures.
func ValidateTemplates(templates []CargoTemplate) error {
	var errs []error
	for _, t := range templates {
		if err := t.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TotalUnits returns the number of units the templates expand to.
func TotalUnits(templates []CargoTemplate) int {
	n := 0
	for _, t := range templates {
		n += t.Quantity
	}
	return n
}

// PlacementUnit is one physical cargo item expanded from a template.
// X runs along the container length, Y is vertical, Z runs across the width.
type PlacementUnit struct {
	ID         string  `json:"id"`
	TemplateID string  `json:"template_id"`
	Name       string  `json:"name"`
	Length     float64 `json:"length"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Weight     float64 `json:"weight"`
	Stackable  bool    `json:"stackable"`
	Rotatable  bool    `json:"rotatable"`
	GapLength  float64 `json:"gap_length,omitempty"`
	GapWidth   float64 `json:"gap_width,omitempty"`

	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
	Rotated bool    `json:"rotated"`
}

// PlacedLength returns the physical extent along X considering rotation.
func (u PlacementUnit) PlacedLength() float64 {
	if u.Rotated {
		return u.Width
	}
	return u.Length
}

// PlacedWidth returns the physical extent along Z considering rotation.
func (u PlacementUnit) PlacedWidth() float64 {
	if u.Rotated {
		return u.Length
	}
	return u.Width
}

// FootprintLength returns the X extent including the clearance gap.
func (u PlacementUnit) FootprintLength() float64 {
	if u.Rotated {
		return u.Width + u.GapWidth
	}
	return u.Length + u.GapLength
}

// FootprintWidth returns the Z extent including the clearance gap.
func (u PlacementUnit) FootprintWidth() float64 {
	if u.Rotated {
		return u.Length + u.GapLength
	}
	return u.Width + u.GapWidth
}

// Volume returns the physical volume of the unit.
func (u PlacementUnit) Volume() float64 {
	return u.Length * u.Width * u.Height
}

// BaseArea returns the physical footprint area.
func (u PlacementUnit) BaseArea() float64 {
	return u.Length * u.Width
}

// MaxDimension returns the largest single physical dimension.
func (u PlacementUnit) MaxDimension() float64 {
	return math.Max(u.Length, math.Max(u.Width, u.Height))
}

// Top returns the Y coordinate of the unit's upper face.
func (u PlacementUnit) Top() float64 {
	return u.Y + u.Height
}
