package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/CargoLoad/internal/model"
	"gopkg.in/yaml.v3"
)

// CatalogFile is the on-disk layout of a custom container catalog.
type CatalogFile struct {
	Containers []model.ContainerType `yaml:"containers"`
}

// CatalogPath returns the custom container catalog inside a data directory.
func CatalogPath(dir string) string {
	return filepath.Join(dir, "containers.yaml")
}

// SaveCatalog writes custom container types to a YAML file.
func SaveCatalog(path string, types []model.ContainerType) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(CatalogFile{Containers: types})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCatalog reads custom container types from a YAML file.
// Returns an empty slice if the file does not exist. Every entry is validated
// and all problems are reported together.
func LoadCatalog(path string) ([]model.ContainerType, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.ContainerType{}, nil
		}
		return nil, err
	}

	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	var errs []error
	seen := make(map[string]bool, len(file.Containers))
	for _, ct := range file.Containers {
		if err := ct.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[ct.ID] {
			errs = append(errs, fmt.Errorf("container %q: duplicate id", ct.ID))
		}
		seen[ct.ID] = true
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if file.Containers == nil {
		file.Containers = []model.ContainerType{}
	}
	return file.Containers, nil
}

// MergeCatalog returns base with custom types appended. A custom type with
// the ID of a base type replaces it in place.
func MergeCatalog(base, custom []model.ContainerType) []model.ContainerType {
	merged := make([]model.ContainerType, len(base))
	copy(merged, base)

	index := make(map[string]int, len(merged))
	for i, ct := range merged {
		index[ct.ID] = i
	}
	for _, ct := range custom {
		if i, ok := index[ct.ID]; ok {
			merged[i] = ct
			continue
		}
		index[ct.ID] = len(merged)
		merged = append(merged, ct)
	}
	return merged
}
