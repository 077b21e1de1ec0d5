package engine

import (
	_ "embed"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed shapes.yaml
var defaultCatalogYAML []byte

// Catalog is a fixed, versioned library of shapes. It is never mutated after loading.
type Catalog struct {
	version string
	shapes  []Shape
}

// yamlCatalog is the on-disk catalog format.
type yamlCatalog struct {
	Version string      `yaml:"version"`
	Shapes  []yamlShape `yaml:"shapes"`
}

type yamlShape struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// NewCatalog builds a catalog from already constructed shapes.
func NewCatalog(version string, shapes ...Shape) (*Catalog, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("engine: catalog %q has no shapes", version)
	}
	cp := make([]Shape, len(shapes))
	copy(cp, shapes)
	return &Catalog{version: version, shapes: cp}, nil
}

// LoadCatalog parses a YAML catalog.
func LoadCatalog(data []byte) (*Catalog, error) {
	var yc yamlCatalog
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("engine: parse catalog: %w", err)
	}

	shapes := make([]Shape, 0, len(yc.Shapes))
	seen := make(map[string]bool, len(yc.Shapes))
	for i, ys := range yc.Shapes {
		name := ys.Name
		if name == "" {
			name = fmt.Sprintf("shape-%d", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("engine: catalog has duplicate shape name %q", name)
		}
		seen[name] = true

		s, err := NewShape(name, ys.Rows...)
		if err != nil {
			return nil, err
		}
		if s.Rows() > GridSize || s.Cols() > GridSize {
			return nil, fmt.Errorf("%w: %q does not fit a %dx%d grid", ErrMalformedShape, name, GridSize, GridSize)
		}
		shapes = append(shapes, s)
	}

	return NewCatalog(yc.Version, shapes...)
}

// LoadCatalogFile reads and parses a YAML catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("engine: read catalog %s: %w", path, err)
	}
	return LoadCatalog(data)
}

// DefaultCatalog returns the embedded catalog.
// Panics if the embedded file is invalid, which only a broken build can cause.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("blocks: embedded catalog: %v", err))
	}
	return c
}

// Version returns the catalog version tag.
func (c *Catalog) Version() string { return c.version }

// Len returns the number of shapes.
func (c *Catalog) Len() int { return len(c.shapes) }

// Shape returns the shape at index i.
func (c *Catalog) Shape(i int) Shape { return c.shapes[i] }

// Shapes returns a copy of all shapes in catalog order.
func (c *Catalog) Shapes() []Shape {
	out := make([]Shape, len(c.shapes))
	copy(out, c.shapes)
	return out
}

// Index returns the catalog position of the named shape, or -1.
func (c *Catalog) Index(name string) int {
	for i, s := range c.shapes {
		if s.Name() == name {
			return i
		}
	}
	return -1
}

// PickRandom draws n shapes independently and uniformly, with replacement.
func (c *Catalog) PickRandom(rng *rand.Rand, n int) []Shape {
	out := make([]Shape, n)
	for i := range out {
		out[i] = c.shapes[rng.Intn(len(c.shapes))]
	}
	return out
}
