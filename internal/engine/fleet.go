package engine

import (
	"io"
	"log/slog"
	"strings"

	"github.com/piwi3910/CargoLoad/internal/model"
)

// Planner allocates cargo across a fleet of containers.
type Planner struct {
	Settings model.PlanSettings
	log      *slog.Logger
}

// New returns a planner. A nil logger discards log output.
func New(settings model.PlanSettings, logger *slog.Logger) *Planner {
	if settings.RoundCap <= 0 {
		settings.RoundCap = model.DefaultRoundCap
	}
	if settings.Metric == "" {
		settings.Metric = model.MetricCount
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Planner{Settings: settings, log: logger}
}

// candidate is one container type's packing attempt within a round.
type candidate struct {
	ct     model.ContainerType
	result PackResult
}

// Plan expands the templates, drops units no selected type can hold and then
// opens containers one round at a time. Each round packs the whole remaining
// pool into every ranked type and commits the best one. Every input unit ends
// up either in exactly one container or in the overflow list.
func (p *Planner) Plan(templates []model.CargoTemplate, types []model.ContainerType) model.FleetResult {
	units := ExpandUnits(templates)
	pool, overflow := FilterFeasible(units, types)
	ranked := RankContainers(types)

	result := model.FleetResult{Overflow: overflow}
	seq := 1
	round := 0

	for len(pool) > 0 {
		round++
		best, ok := p.selectCandidate(ranked, pool, types)
		if !ok {
			result.Overflow = append(result.Overflow, overflowAll(pool, ReasonLayoutError)...)
			p.log.Debug("no container could place any unit", "round", round, "remaining", len(pool))
			pool = nil
			break
		}

		result.Containers = append(result.Containers, model.ContainerInstance{
			Seq:     seq,
			Type:    best.ct,
			Units:   best.result.Packed,
			Warning: strings.Join(best.result.Warnings, "; "),
		})
		pool = removePacked(pool, best.result.Packed)

		p.log.Debug("container committed",
			"round", round,
			"seq", seq,
			"type", best.ct.ID,
			"packed", len(best.result.Packed),
			"weight", best.result.Weight,
			"remaining", len(pool),
		)
		seq++

		if len(result.Containers) >= p.Settings.RoundCap && len(pool) > 0 {
			p.log.Warn("fleet limit reached", "containers", len(result.Containers), "remaining", len(pool))
			result.Overflow = append(result.Overflow, overflowAll(pool, ReasonFleetLimit)...)
			pool = nil
		}
	}

	p.log.Info("plan complete",
		"units", len(units),
		"containers", len(result.Containers),
		"placed", result.PlacedCount(),
		"overflow", len(result.Overflow),
	)
	return result
}

// selectCandidate runs one allocation round. The first type that packs the
// whole pool wins outright; otherwise the best result by the configured
// metric wins, with ties going to the higher-ranked type.
func (p *Planner) selectCandidate(ranked []model.ContainerType, pool []model.PlacementUnit, types []model.ContainerType) (candidate, bool) {
	var best candidate
	found := false

	for _, ct := range ranked {
		res := PackContainer(ct, pool)
		if len(res.Packed) == 0 {
			continue
		}
		if ct.IsSpecial() && !anyRequiresSpecial(res.Packed, types) {
			p.log.Debug("special equipment rejected", "type", ct.ID, "packed", len(res.Packed))
			continue
		}
		if len(res.Unplaced) == 0 {
			return candidate{ct: ct, result: res}, true
		}
		if !found || p.better(res, best.result) {
			best = candidate{ct: ct, result: res}
			found = true
		}
	}
	return best, found
}

func (p *Planner) better(a, b PackResult) bool {
	if p.Settings.Metric == model.MetricVolume {
		return a.PackedVolume() > b.PackedVolume()
	}
	return len(a.Packed) > len(b.Packed)
}

// RequiresSpecial reports whether a unit fits none of the standard types in
// types, in either allowed orientation, weight included. With no standard
// type selected every unit requires special equipment.
func RequiresSpecial(u model.PlacementUnit, types []model.ContainerType) bool {
	for _, ct := range types {
		if ct.IsSpecial() {
			continue
		}
		caps := model.Classify(ct)
		caps.EffLength, caps.EffWidth, caps.EffHeight = caps.PhysLength, caps.PhysWidth, caps.PhysHeight
		if fitsType(u, caps) {
			return false
		}
	}
	return true
}

func anyRequiresSpecial(units []model.PlacementUnit, types []model.ContainerType) bool {
	for _, u := range units {
		if RequiresSpecial(u, types) {
			return true
		}
	}
	return false
}

// removePacked returns the pool without the packed units, matched by ID.
func removePacked(pool, packed []model.PlacementUnit) []model.PlacementUnit {
	ids := make(map[string]bool, len(packed))
	for _, u := range packed {
		ids[u.ID] = true
	}
	remaining := make([]model.PlacementUnit, 0, len(pool)-len(packed))
	for _, u := range pool {
		if !ids[u.ID] {
			remaining = append(remaining, u)
		}
	}
	return remaining
}

func overflowAll(units []model.PlacementUnit, reason string) []model.OverflowRecord {
	records := make([]model.OverflowRecord, len(units))
	for i, u := range units {
		records[i] = model.OverflowRecord{Unit: u, Reason: reason}
	}
	return records
}
