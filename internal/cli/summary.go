package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/piwi3910/CargoLoad/internal/engine"
	"github.com/piwi3910/CargoLoad/internal/model"
)

var (
	colorAccent  = lipgloss.Color("#00FF99")
	colorHeader  = lipgloss.Color("#874BFD")
	colorSubtle  = lipgloss.Color("#64748B")
	colorDanger  = lipgloss.Color("#FF0055")
	colorWarning = lipgloss.Color("#F59E0B")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorHeader)
	subtleStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	dangerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorDanger)
	errorStyle   = lipgloss.NewStyle().Foreground(colorDanger)
)

// table is a plain column layout. Widths are sized to the widest cell so
// lipgloss never wraps.
type table struct {
	header []string
	rows   [][]string
	style  lipgloss.Style
}

func (t table) render(b *strings.Builder) {
	widths := make([]int, len(t.header))
	for i, h := range t.header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	line := func(cells []string, style lipgloss.Style) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = style.Width(widths[i] + 2).Render(cell)
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, ""), " "))
		b.WriteString("\n")
	}

	line(t.header, t.style)
	for _, row := range t.rows {
		line(row, lipgloss.NewStyle())
	}
}

func flush(w io.Writer, b *strings.Builder) error {
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderSummary prints the per-container breakdown, fleet totals, warnings
// and grouped overflow of a plan.
func RenderSummary(w io.Writer, result model.FleetResult) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Load Plan"))
	b.WriteString("\n\n")

	if len(result.Containers) == 0 {
		b.WriteString(subtleStyle.Render("No containers used."))
		b.WriteString("\n")
	} else {
		t := table{
			header: []string{"#", "Type", "Units", "Weight (kg)", "Volume %", "Weight %", "CoG %"},
			style:  headerStyle,
		}
		for _, ci := range result.Containers {
			t.rows = append(t.rows, []string{
				fmt.Sprintf("%d", ci.Seq),
				ci.Type.Name,
				fmt.Sprintf("%d", len(ci.Units)),
				fmt.Sprintf("%.1f / %.0f", ci.TotalWeight(), ci.Type.MaxWeight),
				fmt.Sprintf("%.1f", ci.VolumeUtilization()),
				fmt.Sprintf("%.1f", ci.WeightUtilization()),
				fmt.Sprintf("%.1f", ci.CenterOfGravity()),
			})
		}
		t.render(&b)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Containers: %d  Loaded: %d  Overflow: %d  Weight: %.1f kg  Mean utilisation: %.1f%%\n",
		len(result.Containers), result.PlacedCount(), len(result.Overflow),
		result.TotalWeight(), result.MeanUtilization())

	counts, order := result.TypeCounts()
	if len(order) > 0 {
		parts := make([]string, len(order))
		for i, name := range order {
			parts[i] = fmt.Sprintf("%d x %s", counts[name], name)
		}
		b.WriteString(subtleStyle.Render("Types: " + strings.Join(parts, ", ")))
		b.WriteString("\n")
	}

	if spaces := model.DetectAllFreeSpace(result); len(spaces) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(fmt.Sprintf("Free space (%.1f m3)", model.TotalFreeVolume(spaces))))
		b.WriteString("\n")
		t := table{
			header: []string{"#", "Position", "L x W x H (m)", "Volume (m3)"},
			style:  headerStyle,
		}
		for _, s := range spaces {
			t.rows = append(t.rows, []string{
				fmt.Sprintf("%d", s.ContainerSeq),
				s.Position,
				fmt.Sprintf("%.2f x %.2f x %.2f", s.Length, s.Width, s.Height),
				fmt.Sprintf("%.2f", s.Volume()),
			})
		}
		t.render(&b)
	}

	if warnings := result.Warnings(); len(warnings) > 0 {
		b.WriteString("\n")
		for _, warn := range warnings {
			b.WriteString(warningStyle.Render("! " + warn))
			b.WriteString("\n")
		}
	}

	if groups := engine.GroupOverflow(result.Overflow); len(groups) > 0 {
		b.WriteString("\n")
		b.WriteString(dangerStyle.Render(fmt.Sprintf("Overflow (%d units)", len(result.Overflow))))
		b.WriteString("\n")
		t := table{
			header: []string{"Qty", "Name", "L x W x H (m)", "Weight (kg)", "Reason"},
			style:  headerStyle,
		}
		for _, g := range groups {
			t.rows = append(t.rows, []string{
				fmt.Sprintf("%d", g.Count),
				g.Name,
				fmt.Sprintf("%.2f x %.2f x %.2f", g.Length, g.Width, g.Height),
				fmt.Sprintf("%.1f", g.Weight),
				g.Reason,
			})
		}
		t.render(&b)
	}

	return flush(w, &b)
}

// RenderComparison prints one line per scenario.
func RenderComparison(w io.Writer, results []engine.ComparisonResult) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Scenario Comparison"))
	b.WriteString("\n\n")

	t := table{
		header: []string{"Scenario", "Metric", "Containers", "Overflow", "Mean Util %", "Types"},
		style:  headerStyle,
	}
	for _, r := range results {
		t.rows = append(t.rows, []string{
			r.Scenario.Name,
			string(r.Scenario.Settings.Metric),
			fmt.Sprintf("%d", r.ContainersUsed),
			fmt.Sprintf("%d", r.OverflowCount),
			fmt.Sprintf("%.1f", r.MeanUtilization),
			r.TypeSummary,
		})
	}
	t.render(&b)
	return flush(w, &b)
}

// RenderEstimates prints the quick container estimate for each type. types
// and estimates are parallel.
func RenderEstimates(w io.Writer, types []model.ContainerType, estimates []model.LoadEstimate) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Load Estimate"))
	b.WriteString("\n\n")

	if len(estimates) > 0 {
		e := estimates[0]
		fmt.Fprintf(&b, "Cargo volume: %.2f m3  Weight: %.1f kg  Stowage loss: %.0f%%\n\n",
			e.TotalVolume, e.TotalWeight, e.StowageFactor)
	}

	t := table{
		header: []string{"Type", "By Volume", "With Stowage", "By Weight", "Required", "Loading m"},
		style:  headerStyle,
	}
	for i, e := range estimates {
		name := e.ContainerID
		if i < len(types) {
			name = types[i].Name
		}
		t.rows = append(t.rows, []string{
			name,
			fmt.Sprintf("%.2f", e.ByVolumeExact),
			fmt.Sprintf("%d", e.WithStowage),
			fmt.Sprintf("%d", e.ByWeight),
			fmt.Sprintf("%d", e.ContainersRequired),
			fmt.Sprintf("%.2f", e.LoadingMeters),
		})
	}
	t.render(&b)
	return flush(w, &b)
}

// RenderCatalog lists container types.
func RenderCatalog(w io.Writer, types []model.ContainerType) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Container Types"))
	b.WriteString("\n\n")

	t := table{
		header: []string{"ID", "Name", "L x W x H (m)", "Volume (m3)", "Max (kg)", "Equipment"},
		style:  headerStyle,
	}
	for _, ct := range types {
		t.rows = append(t.rows, []string{
			ct.ID,
			ct.Name,
			fmt.Sprintf("%.3f x %.3f x %.3f", ct.Length, ct.Width, ct.Height),
			fmt.Sprintf("%.1f", ct.Volume()),
			fmt.Sprintf("%.0f", ct.MaxWeight),
			ct.Equipment.String(),
		})
	}
	t.render(&b)
	return flush(w, &b)
}

// RenderTemplates lists saved project templates.
func RenderTemplates(w io.Writer, store model.TemplateStore) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Project Templates"))
	b.WriteString("\n\n")

	if len(store.Templates) == 0 {
		b.WriteString(subtleStyle.Render("No templates saved."))
		b.WriteString("\n")
		return flush(w, &b)
	}

	t := table{
		header: []string{"ID", "Name", "Cargo Lines", "Units", "Containers", "Description"},
		style:  headerStyle,
	}
	for _, tpl := range store.Templates {
		t.rows = append(t.rows, []string{
			tpl.ID,
			tpl.Name,
			fmt.Sprintf("%d", len(tpl.Cargo)),
			fmt.Sprintf("%d", model.TotalUnits(tpl.Cargo)),
			strings.Join(tpl.ContainerIDs, ","),
			tpl.Description,
		})
	}
	t.render(&b)
	return flush(w, &b)
}

// RenderInventory lists the saved cargo presets and custom containers.
func RenderInventory(w io.Writer, inv model.Inventory) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Cargo Presets"))
	b.WriteString("\n\n")

	t := table{
		header: []string{"ID", "Name", "L x W x H (m)", "Weight (kg)", "Stackable", "Rotatable"},
		style:  headerStyle,
	}
	for _, cp := range inv.Cargo {
		t.rows = append(t.rows, []string{
			cp.ID,
			cp.Name,
			fmt.Sprintf("%.2f x %.2f x %.2f", cp.Length, cp.Width, cp.Height),
			fmt.Sprintf("%.1f", cp.Weight),
			yesNo(cp.Stackable),
			yesNo(cp.Rotatable),
		})
	}
	t.render(&b)

	if len(inv.Containers) > 0 {
		b.WriteString("\n")
		if err := flush(w, &b); err != nil {
			return err
		}
		return RenderCatalog(w, inv.Containers)
	}
	return flush(w, &b)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
