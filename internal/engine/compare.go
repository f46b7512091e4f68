package engine

import (
	"fmt"

	"github.com/piwi3910/CargoLoad/internal/model"
)

// ComparisonScenario defines a named container selection and settings to compare.
type ComparisonScenario struct {
	Name       string
	Containers []model.ContainerType
	Settings   model.PlanSettings
}

// ComparisonResult holds the plan and computed statistics for a single scenario.
type ComparisonResult struct {
	Scenario        ComparisonScenario
	Result          model.FleetResult
	ContainersUsed  int
	OverflowCount   int
	MeanUtilization float64
	TypeSummary     string
}

// CompareScenarios plans the same cargo under each scenario and returns the
// results in scenario order.
func CompareScenarios(scenarios []ComparisonScenario, templates []model.CargoTemplate) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		planner := New(scenario.Settings, nil)
		result := planner.Plan(templates, scenario.Containers)

		results = append(results, ComparisonResult{
			Scenario:        scenario,
			Result:          result,
			ContainersUsed:  len(result.Containers),
			OverflowCount:   len(result.Overflow),
			MeanUtilization: result.MeanUtilization(),
			TypeSummary:     typeSummary(result),
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if alternatives around the current
// selection: the other selection metric, standard equipment only, the
// largest selected standard type on its own and the whole catalog.
func BuildDefaultScenarios(selected, catalog []model.ContainerType, settings model.PlanSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:       "Current Selection",
			Containers: selected,
			Settings:   settings,
		},
	}

	// Scenario: Try the other metric
	alt := settings
	if settings.Metric == model.MetricVolume {
		alt.Metric = model.MetricCount
		scenarios = append(scenarios, ComparisonScenario{Name: "Most Units per Container", Containers: selected, Settings: alt})
	} else {
		alt.Metric = model.MetricVolume
		scenarios = append(scenarios, ComparisonScenario{Name: "Most Volume per Container", Containers: selected, Settings: alt})
	}

	var standard []model.ContainerType
	for _, ct := range selected {
		if !ct.IsSpecial() {
			standard = append(standard, ct)
		}
	}

	// Scenario: Drop open-top and flat-rack equipment
	if len(standard) > 0 && len(standard) < len(selected) {
		scenarios = append(scenarios, ComparisonScenario{
			Name:       "Standard Equipment Only",
			Containers: standard,
			Settings:   settings,
		})
	}

	// Scenario: Single largest standard type
	if len(selected) > 1 && len(standard) > 0 {
		largest := RankContainers(standard)[0]
		scenarios = append(scenarios, ComparisonScenario{
			Name:       fmt.Sprintf("%s Only", largest.Name),
			Containers: []model.ContainerType{largest},
			Settings:   settings,
		})
	}

	// Scenario: Everything in the catalog
	if len(catalog) > len(selected) {
		scenarios = append(scenarios, ComparisonScenario{
			Name:       "Full Catalog",
			Containers: catalog,
			Settings:   settings,
		})
	}

	return scenarios
}

func typeSummary(result model.FleetResult) string {
	counts, order := result.TypeCounts()
	s := ""
	for i, name := range order {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%dx %s", counts[name], name)
	}
	return s
}
