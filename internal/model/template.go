package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectTemplate is a reusable project configuration that captures cargo,
// container selection and settings but not planning results.
type ProjectTemplate struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
	Cargo        []CargoTemplate `json:"cargo"`
	ContainerIDs []string        `json:"container_ids"`
	Settings     PlanSettings    `json:"settings"`
}

// NewProjectTemplate creates a new template from the given project data.
func NewProjectTemplate(name, description string, cargo []CargoTemplate, containerIDs []string, settings PlanSettings) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:           uuid.New().String()[:8],
		Name:         name,
		Description:  description,
		CreatedAt:    now,
		UpdatedAt:    now,
		Cargo:        copyCargo(cargo),
		ContainerIDs: append([]string{}, containerIDs...),
		Settings:     settings,
	}
}

// ToProject creates a new Project from this template.
// Cargo lines get fresh IDs so they are independent of the template.
func (t ProjectTemplate) ToProject(projectName string) Project {
	cargo := make([]CargoTemplate, len(t.Cargo))
	for i, c := range t.Cargo {
		cargo[i] = NewCargoTemplate(c.Name, c.Length, c.Width, c.Height, c.Weight, c.Quantity)
		cargo[i].Stackable = c.Stackable
		cargo[i].Rotatable = c.Rotatable
		cargo[i].GapLength = c.GapLength
		cargo[i].GapWidth = c.GapWidth
	}

	return Project{
		Name:         projectName,
		Cargo:        cargo,
		ContainerIDs: append([]string{}, t.ContainerIDs...),
		Settings:     t.Settings,
	}
}

// TemplateStore holds a collection of project templates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ProjectTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t ProjectTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

func copyCargo(cargo []CargoTemplate) []CargoTemplate {
	if cargo == nil {
		return []CargoTemplate{}
	}
	cp := make([]CargoTemplate, len(cargo))
	copy(cp, cargo)
	return cp
}
