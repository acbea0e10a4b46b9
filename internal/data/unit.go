package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// UnitType is the static template a marching unit is spawned from.
type UnitType struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	HP          int     `yaml:"hp"`
	Damage      int     `yaml:"damage"`
	Speed       float64 `yaml:"speed"`        // pixels per second
	Range       float64 `yaml:"range"`        // pixels
	AttackSpeed float64 `yaml:"attack_speed"` // seconds between attacks
	GoldCost    int     `yaml:"gold_cost"`
	Type        string  `yaml:"type"` // melee, ranged, heavy
	Epoch       string  `yaml:"epoch"`
}

type unitListFile struct {
	Units []UnitType `yaml:"units"`
}

// UnitTable holds unit templates in catalog order.
type UnitTable struct {
	units []*UnitType
	byID  map[string]*UnitType
}

// At resolves a catalog index. Indexes past the end resolve to the last entry
// and negative ones to the first, so a bad index from the UI still spawns
// something sensible. ok reports whether index was in range.
func (t *UnitTable) At(index int) (u *UnitType, ok bool) {
	switch {
	case index < 0:
		return t.units[0], false
	case index >= len(t.units):
		return t.units[len(t.units)-1], false
	}
	return t.units[index], true
}

// Get returns a unit template by ID, or nil if not found.
func (t *UnitTable) Get(id string) *UnitType {
	return t.byID[id]
}

// Count returns the number of loaded templates.
func (t *UnitTable) Count() int {
	return len(t.units)
}

// LoadUnitTable loads unit templates from a YAML file, or the embedded table
// when path is empty.
func LoadUnitTable(path string) (*UnitTable, error) {
	raw, err := readTable(path, "unit_list.yaml")
	if err != nil {
		return nil, fmt.Errorf("read unit_list: %w", err)
	}
	var f unitListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse unit_list: %w", err)
	}
	if len(f.Units) == 0 {
		return nil, fmt.Errorf("unit_list: %w", ErrEmptyTable)
	}
	t := &UnitTable{
		units: make([]*UnitType, 0, len(f.Units)),
		byID:  make(map[string]*UnitType, len(f.Units)),
	}
	for i := range f.Units {
		u := &f.Units[i]
		if u.ID == "" {
			return nil, fmt.Errorf("unit_list entry %d: missing id", i)
		}
		if _, dup := t.byID[u.ID]; dup {
			return nil, fmt.Errorf("unit_list: duplicate id %q", u.ID)
		}
		if u.Name == "" {
			u.Name = DisplayName(u.ID)
		}
		t.units = append(t.units, u)
		t.byID[u.ID] = u
	}
	return t, nil
}

func readTable(path, embedded string) ([]byte, error) {
	if path == "" {
		return defaults.ReadFile("defaults/" + embedded)
	}
	return os.ReadFile(path)
}
