package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultContainerIDs []string        `json:"default_container_ids"`
	DefaultMetric       SelectionMetric `json:"default_metric"`
	DefaultRoundCap     int             `json:"default_round_cap"`
	DefaultStowage      float64         `json:"default_stowage"` // percent, used by load estimates

	// Application preferences
	ExportDir      string   `json:"export_dir"`
	RecentProjects []string `json:"recent_projects"`
	Theme          string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with defaults matching
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultContainerIDs: []string{"20_dv_iso", "40_dv_iso", "40_hc_iso"},
		DefaultMetric:       defaults.Metric,
		DefaultRoundCap:     defaults.RoundCap,
		DefaultStowage:      15,
		ExportDir:           ".",
		RecentProjects:      []string{},
		Theme:               "system",
	}
}

// ApplyToProject copies the saved defaults into a new project so it inherits
// the user's preferred container selection and planner settings.
func (c AppConfig) ApplyToProject(p *Project) {
	if len(c.DefaultContainerIDs) > 0 {
		p.ContainerIDs = append([]string(nil), c.DefaultContainerIDs...)
	}
	if c.DefaultMetric != "" {
		p.Settings.Metric = c.DefaultMetric
	}
	if c.DefaultRoundCap > 0 {
		p.Settings.RoundCap = c.DefaultRoundCap
	}
}

// AddRecent moves path to the front of the recent-projects list, keeping at
// most max entries.
func (c *AppConfig) AddRecent(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentProjects = recent
}
