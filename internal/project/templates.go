package project

import (
	"fmt"
	"path/filepath"

	"github.com/piwi3910/CargoLoad/internal/model"
)

// TemplatesPath returns the template store file inside a data directory.
func TemplatesPath(dir string) string {
	return filepath.Join(dir, "templates.json")
}

// SaveTemplates writes the template store to a JSON file.
func SaveTemplates(path string, store model.TemplateStore) error {
	return writeJSON(path, store)
}

// LoadTemplates reads a template store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadTemplates(path string) (model.TemplateStore, error) {
	var store model.TemplateStore
	found, err := readJSON(path, &store)
	if err != nil {
		return model.TemplateStore{}, fmt.Errorf("failed to read templates: %w", err)
	}
	if !found {
		return model.NewTemplateStore(), nil
	}
	if store.Templates == nil {
		store.Templates = []model.ProjectTemplate{}
	}
	return store, nil
}
