package engine

import (
	"testing"

	"github.com/piwi3910/CargoLoad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScenarios(t *testing.T) {
	catalog := model.DefaultCatalog()
	selected, _ := model.SelectContainers(catalog, []string{"20_dv_iso", "40_hc_iso", "40_ot_iso"})

	scenarios := BuildDefaultScenarios(selected, catalog, model.DefaultSettings())

	var names []string
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"Current Selection",
		"Most Volume per Container",
		"Standard Equipment Only",
		"40' High Cube Only",
		"Full Catalog",
	}, names)
	assert.Equal(t, model.MetricVolume, scenarios[1].Settings.Metric)
	assert.Len(t, scenarios[2].Containers, 2)
}

func TestBuildDefaultScenarios_SingleType(t *testing.T) {
	selected := []model.ContainerType{catalogType(t, "20_dv_iso")}
	settings := model.DefaultSettings()
	settings.Metric = model.MetricVolume

	scenarios := BuildDefaultScenarios(selected, selected, settings)

	require.Len(t, scenarios, 2)
	assert.Equal(t, "Most Units per Container", scenarios[1].Name)
	assert.Equal(t, model.MetricCount, scenarios[1].Settings.Metric)
}

func TestCompareScenarios(t *testing.T) {
	templates := []model.CargoTemplate{cargo("Cube", 1, 1, 1, 100, 30)}
	scenarios := []ComparisonScenario{
		{Name: "20ft", Containers: []model.ContainerType{catalogType(t, "20_dv_iso")}, Settings: model.DefaultSettings()},
		{Name: "40ft", Containers: []model.ContainerType{catalogType(t, "40_dv_iso")}, Settings: model.DefaultSettings()},
	}

	results := CompareScenarios(scenarios, templates)

	require.Len(t, results, 2)
	assert.Equal(t, "20ft", results[0].Scenario.Name)
	assert.Equal(t, 2, results[0].ContainersUsed)
	assert.Equal(t, "2x 20' Standard", results[0].TypeSummary)
	assert.Equal(t, 1, results[1].ContainersUsed)
	assert.Equal(t, 0, results[1].OverflowCount)
	assert.Greater(t, results[1].MeanUtilization, 0.0)
}
