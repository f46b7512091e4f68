package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CargoLoad/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultStowage = 25
	cfg.Theme = "dark"

	inv := model.DefaultInventory()
	inv.Containers = append(inv.Containers, model.ContainerType{
		ID: "swap_body", Name: "Swap Body", Length: 7.45, Width: 2.48, Height: 2.7, MaxWeight: 16000,
	})

	store := model.NewTemplateStore()
	store.Add(model.NewProjectTemplate("Weekly", "Weekly pallet run",
		[]model.CargoTemplate{model.NewCargoTemplate("Pallet", 1.2, 0.8, 1.2, 500, 20)},
		[]string{"40_hc_iso"}, model.DefaultSettings()))

	if err := ExportAllData(path, cfg, inv, store); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultStowage != 25 {
		t.Errorf("expected DefaultStowage=25, got %f", backup.Config.DefaultStowage)
	}
	if backup.Config.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", backup.Config.Theme)
	}
	if len(backup.Inventory.Containers) != 1 || backup.Inventory.Containers[0].ID != "swap_body" {
		t.Errorf("custom container not restored: %+v", backup.Inventory.Containers)
	}
	if len(backup.Inventory.Cargo) != len(inv.Cargo) {
		t.Errorf("expected %d cargo presets, got %d", len(inv.Cargo), len(backup.Inventory.Cargo))
	}
	if len(backup.Templates.Templates) != 1 || backup.Templates.Templates[0].Name != "Weekly" {
		t.Errorf("template not restored: %+v", backup.Templates.Templates)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config":{"theme":"dark"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for backup without version")
	}
}

func TestImportAllDataNilSlices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.json")
	if err := os.WriteFile(path, []byte(`{"version":"1.0.0","config":{"recent_projects":null}}`), 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
	if backup.Templates.Templates == nil {
		t.Error("Templates should not be nil")
	}
}
