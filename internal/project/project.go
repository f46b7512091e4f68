package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/CargoLoad/internal/model"
	"gopkg.in/yaml.v3"
)

// isYAML reports whether path names a YAML file.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// SaveProject writes a project to path. Files ending in .yaml or .yml are
// written as YAML without the last result; anything else is JSON.
func SaveProject(path string, p model.Project) error {
	if !isYAML(path) {
		return writeJSON(path, p)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProject reads a project written by SaveProject and validates its cargo.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}

	p := model.NewProject()
	p.ContainerIDs = nil
	if isYAML(path) {
		err = yaml.Unmarshal(data, &p)
	} else {
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project %s: %w", path, err)
	}

	if p.Cargo == nil {
		p.Cargo = []model.CargoTemplate{}
	}
	metric, err := model.ParseSelectionMetric(string(p.Settings.Metric))
	if err != nil {
		return model.Project{}, fmt.Errorf("project %s: %w", path, err)
	}
	p.Settings.Metric = metric
	if p.Settings.RoundCap <= 0 {
		p.Settings.RoundCap = model.DefaultRoundCap
	}
	if err := model.ValidateTemplates(p.Cargo); err != nil {
		return model.Project{}, fmt.Errorf("project %s: %w", path, err)
	}
	return p, nil
}
