package data

import (
	"embed"
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed defaults/*.yaml
var defaults embed.FS

// ErrEmptyTable is returned when a catalog file has no entries.
var ErrEmptyTable = errors.New("empty table")

// DisplayName derives a readable name from a catalog id such as
// "rock-thrower" → "Rock Thrower". Used when an entry omits its name.
func DisplayName(id string) string {
	return cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(id))
}

// Catalog bundles the three static tables the simulation reads from.
type Catalog struct {
	Units   *UnitTable
	Turrets *TurretTable
	Epochs  *EpochTable
}

// LoadCatalog loads all tables. Empty paths select the embedded defaults.
func LoadCatalog(unitsPath, turretsPath, epochsPath string) (*Catalog, error) {
	units, err := LoadUnitTable(unitsPath)
	if err != nil {
		return nil, err
	}
	turrets, err := LoadTurretTable(turretsPath)
	if err != nil {
		return nil, err
	}
	epochs, err := LoadEpochTable(epochsPath)
	if err != nil {
		return nil, err
	}
	return &Catalog{Units: units, Turrets: turrets, Epochs: epochs}, nil
}
