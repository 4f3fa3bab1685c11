// Package crops holds the crop reference table used by every calculator.
package crops

import (
	"errors"
	"strings"

	"github.com/agriprojet/agriprojet/internal/cycles"
)

// Category classifies crops the way extension services group them.
type Category string

const (
	// CategoryMaraichage covers market-garden vegetables.
	CategoryMaraichage Category = "maraichage"
	// CategoryVivrier covers staple cereals.
	CategoryVivrier Category = "vivrier"
	// CategoryTubercule covers roots and tubers.
	CategoryTubercule Category = "tubercule"
	// CategoryLegumineuse covers pulses and oilseed legumes.
	CategoryLegumineuse Category = "legumineuse"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryMaraichage, CategoryVivrier, CategoryTubercule, CategoryLegumineuse}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMaraichage, CategoryVivrier, CategoryTubercule, CategoryLegumineuse:
		return true
	}
	return false
}

// Unit is the selling unit of a harvest.
type Unit string

const (
	UnitKg     Unit = "kg"
	UnitTonne  Unit = "tonne"
	UnitRegime Unit = "regime"
	UnitSac    Unit = "sac"
	UnitPiece  Unit = "piece"
)

// Valid reports whether u is a supported unit.
func (u Unit) Valid() bool {
	switch u {
	case UnitKg, UnitTonne, UnitRegime, UnitSac, UnitPiece:
		return true
	}
	return false
}

// PriceRange is the regional farm-gate price in FCFA per unit.
type PriceRange struct {
	Min     float64 `json:"min" yaml:"min" validate:"gte=0"`
	Max     float64 `json:"max" yaml:"max" validate:"gte=0,gtefield=Min"`
	Average float64 `json:"moyen" yaml:"moyen" validate:"gte=0"`
}

// ProductionCosts is the per-hectare cost breakdown in FCFA for a whole
// campaign year. Unlike yield it is not scaled by the cycles per year.
type ProductionCosts struct {
	Seeds      float64 `json:"semences" yaml:"semences" validate:"gte=0"`
	Fertilizer float64 `json:"engrais" yaml:"engrais" validate:"gte=0"`
	Pesticides float64 `json:"pesticides" yaml:"pesticides" validate:"gte=0"`
	Labor      float64 `json:"mainOeuvre" yaml:"mainOeuvre" validate:"gte=0"`
}

// PerHectare sums the cost components.
func (c ProductionCosts) PerHectare() float64 {
	return c.Seeds + c.Fertilizer + c.Pesticides + c.Labor
}

// Crop is a reference entry of the catalog. Custom crops share the same shape.
type Crop struct {
	ID              string          `json:"id" yaml:"id" validate:"required,max=64"`
	Name            string          `json:"name" yaml:"name" validate:"required,max=120"`
	Category        Category        `json:"category" yaml:"category" validate:"required"`
	CycleMonths     int             `json:"cycleMonths" yaml:"cycleMonths" validate:"gte=0,lte=60"`
	RestMonths      int             `json:"periodeRepos" yaml:"periodeRepos" validate:"gte=0,lte=24"`
	Unit            Unit            `json:"unit" yaml:"unit" validate:"required"`
	YieldPerHectare float64         `json:"rendementMoyen" yaml:"rendementMoyen" validate:"gte=0"`
	Price           PriceRange      `json:"prix" yaml:"prix"`
	ProductionCosts ProductionCosts `json:"productionCosts" yaml:"productionCosts"`
	PlantingDensity float64         `json:"densite" yaml:"densite" validate:"gte=0"`
	Rotations       []string        `json:"rotations,omitempty" yaml:"rotations"`
	Custom          bool            `json:"custom" yaml:"-"`
}

// Schedule returns the crop cycle with its rest period.
func (c Crop) Schedule() cycles.Schedule {
	return cycles.Schedule{CycleMonths: c.CycleMonths, RestMonths: c.RestMonths}
}

// CyclesPerYear is a shortcut for Schedule().PerYear().
func (c Crop) CyclesPerYear() int {
	return c.Schedule().PerYear()
}

// Lookup resolves a crop id. Callers treat a false result as "no crop".
type Lookup func(id string) (Crop, bool)

var (
	// ErrDuplicateCrop is returned when a custom crop reuses an existing id.
	ErrDuplicateCrop = errors.New("crops: duplicate crop id")
	// ErrInvalidCrop wraps validation failures of a crop definition.
	ErrInvalidCrop = errors.New("crops: invalid crop")
)

func normaliseID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
