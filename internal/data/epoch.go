package data

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Epoch is one rung of the progression ladder.
type Epoch struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	XPToNext int          `yaml:"xp_to_next"`
	Unlocks  EpochUnlocks `yaml:"unlocks"`
}

type EpochUnlocks struct {
	Units   []string `yaml:"units"`
	Turrets []string `yaml:"turrets"`
}

type epochListFile struct {
	Epochs []Epoch `yaml:"epochs"`
}

// EpochTable holds the ordered epoch ladder.
type EpochTable struct {
	epochs []*Epoch
}

// At returns the epoch at index, falling back to the first epoch when index
// is out of range.
func (t *EpochTable) At(index int) *Epoch {
	if index < 0 || index >= len(t.epochs) {
		return t.epochs[0]
	}
	return t.epochs[index]
}

// HasNext reports whether an epoch follows index.
func (t *EpochTable) HasNext(index int) bool {
	return index >= 0 && index < len(t.epochs)-1
}

// Count returns the number of epochs.
func (t *EpochTable) Count() int {
	return len(t.epochs)
}

// LoadEpochTable loads the epoch ladder from a YAML file, or the embedded
// ladder when path is empty.
func LoadEpochTable(path string) (*EpochTable, error) {
	raw, err := readTable(path, "epoch_list.yaml")
	if err != nil {
		return nil, fmt.Errorf("read epoch_list: %w", err)
	}
	var f epochListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse epoch_list: %w", err)
	}
	if len(f.Epochs) == 0 {
		return nil, fmt.Errorf("epoch_list: %w", ErrEmptyTable)
	}
	t := &EpochTable{epochs: make([]*Epoch, 0, len(f.Epochs))}
	for i := range f.Epochs {
		e := &f.Epochs[i]
		if e.XPToNext <= 0 {
			return nil, fmt.Errorf("epoch_list: %q has non-positive xp_to_next", e.ID)
		}
		if e.Name == "" {
			e.Name = DisplayName(e.ID)
		}
		t.epochs = append(t.epochs, e)
	}
	return t, nil
}
