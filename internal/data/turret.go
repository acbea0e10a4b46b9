package data

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TurretType is the static template for a placeable turret.
type TurretType struct {
	ID              string  `yaml:"id"`
	Name            string  `yaml:"name"`
	Damage          int     `yaml:"damage"`
	AttackSpeed     float64 `yaml:"attack_speed"` // seconds between shots
	Range           float64 `yaml:"range"`
	ProjectileSpeed float64 `yaml:"projectile_speed"` // pixels per second
	GoldCost        int     `yaml:"gold_cost"`
	Epoch           string  `yaml:"epoch"`
}

type turretListFile struct {
	Turrets []TurretType `yaml:"turrets"`
}

// TurretTable holds turret templates in catalog order.
type TurretTable struct {
	turrets []*TurretType
	byID    map[string]*TurretType
}

// At returns the turret at index, or nil and false when out of range.
func (t *TurretTable) At(index int) (*TurretType, bool) {
	if index < 0 || index >= len(t.turrets) {
		return nil, false
	}
	return t.turrets[index], true
}

// Get returns a turret template by ID, or nil if not found.
func (t *TurretTable) Get(id string) *TurretType {
	return t.byID[id]
}

// Count returns the number of loaded templates.
func (t *TurretTable) Count() int {
	return len(t.turrets)
}

// LoadTurretTable loads turret templates from a YAML file, or the embedded
// table when path is empty.
func LoadTurretTable(path string) (*TurretTable, error) {
	raw, err := readTable(path, "turret_list.yaml")
	if err != nil {
		return nil, fmt.Errorf("read turret_list: %w", err)
	}
	var f turretListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse turret_list: %w", err)
	}
	if len(f.Turrets) == 0 {
		return nil, fmt.Errorf("turret_list: %w", ErrEmptyTable)
	}
	t := &TurretTable{
		turrets: make([]*TurretType, 0, len(f.Turrets)),
		byID:    make(map[string]*TurretType, len(f.Turrets)),
	}
	for i := range f.Turrets {
		tt := &f.Turrets[i]
		if tt.ID == "" {
			return nil, fmt.Errorf("turret_list entry %d: missing id", i)
		}
		if _, dup := t.byID[tt.ID]; dup {
			return nil, fmt.Errorf("turret_list: duplicate id %q", tt.ID)
		}
		if tt.Name == "" {
			tt.Name = DisplayName(tt.ID)
		}
		t.turrets = append(t.turrets, tt)
		t.byID[tt.ID] = tt
	}
	return t, nil
}
