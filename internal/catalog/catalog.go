// Package catalog holds the importable regions and where their extracts live.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/inwheel/accessibility-importer/internal/domain"
	"github.com/inwheel/accessibility-importer/internal/pkg/errors"
	"github.com/inwheel/accessibility-importer/internal/pkg/validator"
)

//go:embed regions.yaml
var defaultRegions []byte

const (
	extractSuffix  = "-latest.osm.pbf"
	filteredSuffix = "-filtered.osm.pbf"
)

type file struct {
	Regions []domain.Region `yaml:"regions"`
}

// Catalog is an ordered, validated set of regions.
type Catalog struct {
	regions []domain.Region
	byName  map[string]int
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(defaultRegions)
}

// Load reads a catalog file. An empty path means the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read regions file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode regions: %w", err)
	}
	if len(f.Regions) == 0 {
		return nil, fmt.Errorf("catalog has no regions")
	}

	c := &Catalog{
		regions: f.Regions,
		byName:  make(map[string]int, len(f.Regions)),
	}
	for i, r := range f.Regions {
		if err := validator.Validate(r); err != nil {
			return nil, fmt.Errorf("region %d (%q): %w", i, r.Name, err)
		}
		if _, dup := c.byName[r.Name]; dup {
			return nil, fmt.Errorf("duplicate region %q", r.Name)
		}
		c.byName[r.Name] = i
	}
	return c, nil
}

// Regions returns all regions in catalog order.
func (c *Catalog) Regions() []domain.Region {
	out := make([]domain.Region, len(c.regions))
	copy(out, c.regions)
	return out
}

func (c *Catalog) Lookup(name string) (domain.Region, error) {
	i, ok := c.byName[name]
	if !ok {
		return domain.Region{}, fmt.Errorf("%q: %w", name, errors.ErrRegionNotFound)
	}
	return c.regions[i], nil
}

// Resolve maps names to regions, keeping the given order. No names selects
// the whole catalog.
func (c *Catalog) Resolve(names []string) ([]domain.Region, error) {
	if len(names) == 0 {
		return c.Regions(), nil
	}
	out := make([]domain.Region, 0, len(names))
	for _, name := range names {
		r, err := c.Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// ExtractPath is the raw extract of a region. A relative extract override is
// taken relative to dataDir.
func ExtractPath(dataDir string, r domain.Region) string {
	if r.Extract != "" {
		if filepath.IsAbs(r.Extract) {
			return r.Extract
		}
		return filepath.Join(dataDir, r.Extract)
	}
	return filepath.Join(dataDir, r.Name+extractSuffix)
}

// FilteredPath is the category-filtered extract of a region.
func FilteredPath(dataDir string, r domain.Region) string {
	return filepath.Join(dataDir, r.Name+filteredSuffix)
}
