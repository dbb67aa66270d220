// Package imagemap resolves display images for menu items and brands whose
// catalog records carry no image of their own.
package imagemap

import (
	_ "embed"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

//go:embed images.yaml
var bundled []byte

type tableFile struct {
	Images   map[string]string `yaml:"images"`
	Fallback string            `yaml:"fallback"`
}

// Table maps display names to image paths. Lookup walks the given names in
// order, so callers can try a localized name first and an English alias
// second before landing on the fallback image.
type Table struct {
	images   map[string]string
	fallback string
}

// Bundled returns the table compiled into the binary.
func Bundled() (*Table, error) {
	return parse(bundled)
}

// Load reads a table from a YAML file, replacing the bundled one.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image table: %w", err)
	}
	return parse(raw)
}

func parse(raw []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing image table: %w", err)
	}
	if file.Images == nil {
		file.Images = map[string]string{}
	}
	return &Table{images: file.Images, fallback: file.Fallback}, nil
}

// Resolve returns the image for the first name with a mapping, or the
// fallback image when none match.
func (t *Table) Resolve(names ...string) string {
	for _, name := range names {
		if name == "" {
			continue
		}
		if image, ok := t.images[name]; ok {
			return image
		}
	}
	return t.fallback
}
