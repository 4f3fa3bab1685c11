package crops

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Catalog is an immutable set of crops indexed by id. Build one per project so
// that custom crops never leak between projects.
type Catalog struct {
	crops []Crop
	index map[string]int
}

// NewCatalog returns the default table extended with the given custom crops.
func NewCatalog(custom ...Crop) (*Catalog, error) {
	defaults := DefaultCrops()
	c := &Catalog{
		crops: make([]Crop, 0, len(defaults)+len(custom)),
		index: make(map[string]int, len(defaults)+len(custom)),
	}
	for _, crop := range defaults {
		c.add(crop)
	}
	for _, crop := range custom {
		crop.Custom = true
		if err := Validate(crop); err != nil {
			return nil, err
		}
		if _, exists := c.index[normaliseID(crop.ID)]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCrop, crop.ID)
		}
		c.add(crop)
	}
	return c, nil
}

// MustDefault returns the catalog without custom crops.
func MustDefault() *Catalog {
	c, err := NewCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) add(crop Crop) {
	c.index[normaliseID(crop.ID)] = len(c.crops)
	c.crops = append(c.crops, crop)
}

// Validate checks a crop definition.
func Validate(crop Crop) error {
	if err := structValidator().Struct(crop); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed on %s", ErrInvalidCrop, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidCrop, err)
	}
	if !crop.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidCrop, crop.Category)
	}
	if !crop.Unit.Valid() {
		return fmt.Errorf("%w: unknown unit %q", ErrInvalidCrop, crop.Unit)
	}
	return nil
}

// Find returns the crop with the given id.
func (c *Catalog) Find(id string) (Crop, bool) {
	if c == nil {
		return Crop{}, false
	}
	i, ok := c.index[normaliseID(id)]
	if !ok {
		return Crop{}, false
	}
	return c.crops[i], true
}

// Lookup exposes Find as a Lookup function.
func (c *Catalog) Lookup() Lookup {
	return c.Find
}

// All returns every crop, defaults first, in insertion order.
func (c *Catalog) All() []Crop {
	if c == nil {
		return nil
	}
	out := make([]Crop, len(c.crops))
	copy(out, c.crops)
	return out
}

// Custom returns the crops added on top of the defaults.
func (c *Catalog) Custom() []Crop {
	var out []Crop
	for _, crop := range c.All() {
		if crop.Custom {
			out = append(out, crop)
		}
	}
	return out
}

// ByCategory returns the crops of one category sorted by name.
func (c *Catalog) ByCategory(cat Category) []Crop {
	var out []Crop
	for _, crop := range c.All() {
		if crop.Category == cat {
			out = append(out, crop)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RotationCompatible reports whether next may follow prev on the same parcel.
// Either crop listing the other is enough.
func (c *Catalog) RotationCompatible(prev, next string) bool {
	a, okA := c.Find(prev)
	b, okB := c.Find(next)
	if !okA || !okB {
		return false
	}
	for _, id := range a.Rotations {
		if normaliseID(id) == normaliseID(b.ID) {
			return true
		}
	}
	for _, id := range b.Rotations {
		if normaliseID(id) == normaliseID(a.ID) {
			return true
		}
	}
	return false
}
