package shapes

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

//go:embed defaults/shapes.yaml
var builtinYAML []byte

// Catalog is a set of shapes addressed by case-insensitive name.
type Catalog struct {
	mu     sync.RWMutex
	shapes map[string]Shape
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{shapes: make(map[string]Shape)}
}

// Builtin returns a catalog holding the embedded shapes.
// Panics if the embedded file is malformed.
func Builtin() *Catalog {
	c := NewCatalog()
	shapes, err := ParseYAML(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("shapes: embedded defaults: %v", err))
	}
	for _, s := range shapes {
		if err := c.Register(s); err != nil {
			panic(fmt.Sprintf("shapes: embedded defaults: %v", err))
		}
	}
	return c
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a shape. Invalid shapes and duplicate names are rejected.
func (c *Catalog) Register(s Shape) error {
	if err := s.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	k := key(s.Name)
	if _, exists := c.shapes[k]; exists {
		return fmt.Errorf("shapes: shape %q already registered", s.Name)
	}
	s.Name = k
	c.shapes[k] = s
	return nil
}

// Lookup returns the shape with the given name.
func (c *Catalog) Lookup(name string) (Shape, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.shapes[key(name)]
	return s, ok
}

// Names returns all shape names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.shapes))
	for name := range c.shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns all shapes sorted by name.
func (c *Catalog) List() []Shape {
	names := c.Names()

	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Shape, 0, len(names))
	for _, name := range names {
		result = append(result, c.shapes[name])
	}
	return result
}

// Len returns the number of shapes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.shapes)
}

// LoadFile parses a shape file and registers every shape in it.
// Returns the number of shapes registered.
func (c *Catalog) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("shapes: reading file %s: %w", path, err)
	}

	shapes, err := ParseYAML(data)
	if err != nil {
		return 0, fmt.Errorf("shapes: parsing file %s: %w", path, err)
	}

	loaded := 0
	for _, s := range shapes {
		if err := c.Register(s); err != nil {
			return loaded, fmt.Errorf("shapes: %s: %w", path, err)
		}
		loaded++
	}
	return loaded, nil
}

// LoadDir recursively loads every shape file under dir. Files that fail to
// load are skipped; their errors are joined into the returned error while
// the valid files stay registered.
func (c *Catalog) LoadDir(dir string) (int, error) {
	var (
		loaded int
		errs   []error
	)

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		n, loadErr := c.LoadFile(path)
		loaded += n
		if loadErr != nil {
			errs = append(errs, loadErr)
		}
		return nil
	})
	if err != nil {
		return loaded, fmt.Errorf("shapes: walking directory %s: %w", dir, err)
	}

	return loaded, errors.Join(errs...)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
