// Package engine computes container load plans: it expands cargo templates
// into units, filters the ones no selected container can hold, packs single
// containers with an anchor-point heuristic and allocates a fleet round by
// round.
package engine

// Placement constants. These are fixed heuristics and are not configurable.
const (
	Epsilon            = 0.001 // geometric tolerance (m)
	AntiFloatingRatio  = 0.50  // min share of a unit's base resting on an open deck
	SupportRatio       = 0.70  // min share of an elevated unit's base that must be supported
	CenteringThreshold = 0.05  // free length/width (m) that triggers a centering shift
)

// Overflow reasons.
const (
	ReasonNoContainer = "No Container Selected"
	ReasonTooLong     = "Too Long for Available Containers"
	ReasonTooTall     = "Too Tall (Needs Open Top/Flat Rack)"
	ReasonTooWide     = "Too Wide (Needs Flat Rack)"
	ReasonTooHeavy    = "Too Heavy for any Container"
	ReasonNoSpace     = "No space left / Layout"
	ReasonLayoutError = "No space left / Layout Error (or Standard Items blocked from Special)"
	ReasonFleetLimit  = "Overflow (Fleet Limit)"
)
