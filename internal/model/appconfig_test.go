package model

import "testing"

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()
	if cfg.DefaultMetric != MetricCount {
		t.Errorf("expected count metric, got %q", cfg.DefaultMetric)
	}
	if cfg.DefaultRoundCap != DefaultRoundCap {
		t.Errorf("expected round cap %d, got %d", DefaultRoundCap, cfg.DefaultRoundCap)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected theme 'system', got %q", cfg.Theme)
	}
	if cfg.RecentProjects == nil {
		t.Error("expected non-nil RecentProjects")
	}
}

func TestApplyToProject(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultContainerIDs = []string{"40_hc_iso"}
	cfg.DefaultMetric = MetricVolume
	cfg.DefaultRoundCap = 7

	p := NewProject()
	cfg.ApplyToProject(&p)

	if len(p.ContainerIDs) != 1 || p.ContainerIDs[0] != "40_hc_iso" {
		t.Errorf("unexpected container ids %v", p.ContainerIDs)
	}
	if p.Settings.Metric != MetricVolume || p.Settings.RoundCap != 7 {
		t.Errorf("settings not applied: %+v", p.Settings)
	}

	// Mutating the config afterwards must not leak into the project
	cfg.DefaultContainerIDs[0] = "changed"
	if p.ContainerIDs[0] != "40_hc_iso" {
		t.Error("project shares container id slice with config")
	}
}

func TestAddRecent(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecent("a.json", 3)
	cfg.AddRecent("b.json", 3)
	cfg.AddRecent("c.json", 3)
	cfg.AddRecent("a.json", 3)
	cfg.AddRecent("d.json", 3)

	want := []string{"d.json", "a.json", "c.json"}
	if len(cfg.RecentProjects) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.RecentProjects)
	}
	for i := range want {
		if cfg.RecentProjects[i] != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], cfg.RecentProjects[i])
		}
	}
}
