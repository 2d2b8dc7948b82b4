package item

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.schema.json
var catalogSchemaJSON string

var catalogSchema = jsonschema.MustCompileString("catalog.schema.json", catalogSchemaJSON)

// Catalog holds every item definition known to the game, in declaration order.
type Catalog struct {
	items map[string]*Item
	order []*Item
}

type catalogDoc struct {
	Items []itemDoc `yaml:"items"`
}

type itemDoc struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name"`
	Icon       string         `yaml:"icon"`
	MaxStack   int            `yaml:"max_stack"`
	Components []componentDoc `yaml:"components"`
}

type componentDoc struct {
	Name     string     `yaml:"name"`
	Requires string     `yaml:"requires"`
	Offset   [3]float32 `yaml:"offset"`
	Euler    [3]float32 `yaml:"euler"`
	Extents  [3]float32 `yaml:"extents"`
}

// LoadCatalog reads and validates a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := ParseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog builds a catalog from a YAML document.
// The document is checked against the embedded schema before any reference is resolved.
func ParseCatalog(raw []byte) (*Catalog, error) {
	if err := validateCatalog(raw); err != nil {
		return nil, err
	}

	var doc catalogDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{items: make(map[string]*Item, len(doc.Items))}
	var errs []error

	// First pass registers every item so components may reference items declared later.
	for _, d := range doc.Items {
		if _, dup := c.items[d.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate item id %q", ErrInvalidCatalog, d.ID))
			continue
		}
		it := &Item{
			ID:          d.ID,
			DisplayName: d.Name,
			Icon:        d.Icon,
			MaxStack:    d.MaxStack,
		}
		if it.DisplayName == "" {
			it.DisplayName = d.ID
		}
		c.items[d.ID] = it
		c.order = append(c.order, it)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	for _, d := range doc.Items {
		it := c.items[d.ID]
		for _, cd := range d.Components {
			req, ok := c.items[cd.Requires]
			if !ok {
				errs = append(errs, fmt.Errorf("%w: item %q component %q requires %q", ErrUnknownItem, d.ID, cd.Name, cd.Requires))
				continue
			}
			it.Prefab.Components = append(it.Prefab.Components, Component{
				Name:     cd.Name,
				Required: req,
				Offset:   mgl32.Vec3(cd.Offset),
				Euler:    mgl32.Vec3(cd.Euler),
				Extents:  defaultExtents(mgl32.Vec3(cd.Extents)),
			})
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

func validateCatalog(raw []byte) error {
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	// Round trip through JSON so the validator sees plain JSON values.
	b, err := json.Marshal(generic)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := catalogSchema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return nil
}

func defaultExtents(e mgl32.Vec3) mgl32.Vec3 {
	if e.X() <= 0 && e.Y() <= 0 && e.Z() <= 0 {
		return mgl32.Vec3{0.1, 0.1, 0.1}
	}
	return e
}

// Lookup returns the item with the given id.
func (c *Catalog) Lookup(id string) (*Item, error) {
	it, ok := c.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	return it, nil
}

// All returns every item in declaration order.
func (c *Catalog) All() []*Item {
	out := make([]*Item, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.order)
}
