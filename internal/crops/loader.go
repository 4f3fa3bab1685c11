package crops

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type catalogFile struct {
	Crops []Crop `yaml:"crops"`
}

// LoadFile reads additional crop definitions from a YAML document of the form
//
//	crops:
//	  - id: ananas
//	    name: Ananas
//	    category: maraichage
//	    ...
//
// The crops are returned unvalidated; NewCatalog validates them.
func LoadFile(path string) ([]Crop, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("crops: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a YAML catalog document.
func Parse(raw []byte) ([]Crop, error) {
	var doc catalogFile
	if err := yaml.UnmarshalStrict(raw, &doc); err != nil {
		return nil, fmt.Errorf("crops: decode catalog: %w", err)
	}
	return doc.Crops, nil
}
