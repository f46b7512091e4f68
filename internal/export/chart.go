package export

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/piwi3910/CargoLoad/internal/model"
)

// UtilizationChart builds a bar chart with volume and weight utilisation per
// container.
func UtilizationChart(result model.FleetResult) *charts.Bar {
	labels := make([]string, 0, len(result.Containers))
	volume := make([]opts.BarData, 0, len(result.Containers))
	weight := make([]opts.BarData, 0, len(result.Containers))
	for _, ci := range result.Containers {
		labels = append(labels, fmt.Sprintf("#%d %s", ci.Seq, ci.Type.Name))
		volume = append(volume, opts.BarData{Value: round1(ci.VolumeUtilization())})
		weight = append(weight, opts.BarData{Value: round1(ci.WeightUtilization())})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Container Utilisation",
			Subtitle: fmt.Sprintf("%d containers, %d units loaded, %d overflow", len(result.Containers), result.PlacedCount(), len(result.Overflow)),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "%", Min: 0, Max: 100}),
	)
	bar.SetXAxis(labels).
		AddSeries("Volume", volume).
		AddSeries("Weight", weight)
	return bar
}

// WriteChart renders the utilisation chart as a standalone HTML page.
func WriteChart(w io.Writer, result model.FleetResult) error {
	if len(result.Containers) == 0 {
		return fmt.Errorf("no containers to chart")
	}
	return UtilizationChart(result).Render(w)
}

// ExportChart writes the utilisation chart to an HTML file.
func ExportChart(path string, result model.FleetResult) error {
	if len(result.Containers) == 0 {
		return fmt.Errorf("no containers to chart")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := WriteChart(f, result); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return f.Close()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
