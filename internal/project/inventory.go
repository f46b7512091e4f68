package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/CargoLoad/internal/model"
)

// InventoryPath returns the inventory file inside a data directory.
func InventoryPath(dir string) string {
	return filepath.Join(dir, "inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	var inv model.Inventory
	found, err := readJSON(path, &inv)
	if err != nil {
		return model.Inventory{}, err
	}
	if !found {
		inv = model.DefaultInventory()
		return inv, SaveInventory(path, inv)
	}
	if inv.Containers == nil {
		inv.Containers = []model.ContainerType{}
	}
	if inv.Cargo == nil {
		inv.Cargo = []model.CargoPreset{}
	}
	return inv, nil
}

// ImportInventory imports an inventory from a user-specified JSON file,
// merging it with the existing inventory. Duplicate IDs are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}

	containerIDs := make(map[string]bool, len(existing.Containers))
	for _, c := range existing.Containers {
		containerIDs[c.ID] = true
	}
	cargoIDs := make(map[string]bool, len(existing.Cargo))
	for _, c := range existing.Cargo {
		cargoIDs[c.ID] = true
	}

	for _, c := range imported.Containers {
		if !containerIDs[c.ID] {
			existing.Containers = append(existing.Containers, c)
			containerIDs[c.ID] = true
		}
	}
	for _, c := range imported.Cargo {
		if !cargoIDs[c.ID] {
			existing.Cargo = append(existing.Cargo, c)
			cargoIDs[c.ID] = true
		}
	}

	return existing, nil
}
