// Package catalog loads the static controller reference data and exposes
// resolved controller views over it.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rmrfslashbin/padbind/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/controllers.yaml
var builtinCatalog []byte

// Catalog holds every known controller model, keyed by canonical name.
// It is loaded once and read-only afterwards.
type Catalog struct {
	entries map[string]models.Entry
	order   []string
}

// Load reads and parses a catalog document from disk. The catalog is
// required for all identification, so any failure here is fatal to the
// caller.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// LoadBuiltin parses the catalog document compiled into the binary.
func LoadBuiltin() (*Catalog, error) {
	return Parse(builtinCatalog)
}

// Parse parses a catalog document and validates every entry.
func Parse(data []byte) (*Catalog, error) {
	var entries []models.Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	c := &Catalog{entries: make(map[string]models.Entry, len(entries))}
	for _, entry := range entries {
		if err := validateEntry(entry); err != nil {
			return nil, err
		}
		if _, ok := c.entries[entry.Name]; ok {
			return nil, fmt.Errorf("duplicate catalog entry %q", entry.Name)
		}
		c.entries[entry.Name] = entry
		c.order = append(c.order, entry.Name)
	}
	return c, nil
}

func validateEntry(entry models.Entry) error {
	if entry.Name == "" {
		return fmt.Errorf("catalog entry with empty name")
	}
	if entry.NumButtons < 0 || entry.NumAxes < 0 {
		return fmt.Errorf("catalog entry %q has negative capacity", entry.Name)
	}
	for index, name := range entry.Buttons {
		if index < 0 {
			return fmt.Errorf("catalog entry %q has negative button index %d", entry.Name, index)
		}
		if !KnownButton(name) {
			return fmt.Errorf("catalog entry %q uses unknown button name %q", entry.Name, name)
		}
	}
	for index := range entry.AxisButtons {
		if index < 0 {
			return fmt.Errorf("catalog entry %q has negative axis button index %d", entry.Name, index)
		}
	}
	for index := range entry.Axes {
		if index < 0 {
			return fmt.Errorf("catalog entry %q has negative axis index %d", entry.Name, index)
		}
	}
	return nil
}

// Get returns the entry for a canonical name.
func (c *Catalog) Get(name string) (models.Entry, error) {
	entry, ok := c.entries[name]
	if !ok {
		return models.Entry{}, fmt.Errorf("controller %q: %w", name, models.ErrNotFound)
	}
	return entry, nil
}

// Has reports whether a canonical name exists in the catalog.
func (c *Catalog) Has(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// Names returns every catalog entry name in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// SupportedNames returns the names of entries exposed to users, in
// catalog order.
func (c *Catalog) SupportedNames() []string {
	var names []string
	for _, name := range c.order {
		if c.entries[name].Supported {
			names = append(names, name)
		}
	}
	return names
}
