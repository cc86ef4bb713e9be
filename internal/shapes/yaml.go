package shapes

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLShape is a single shape entry in a YAML file.
type YAMLShape struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Pattern     string `yaml:"pattern"`
}

// YAMLFile is the layout of a shape file: either a list under "shapes" or a
// single shape at the top level.
type YAMLFile struct {
	Shapes    []YAMLShape `yaml:"shapes"`
	YAMLShape `yaml:",inline"`
}

// ParseYAML parses a shape file.
func ParseYAML(data []byte) ([]Shape, error) {
	var f YAMLFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	entries := f.Shapes
	if f.Name != "" || f.Pattern != "" {
		entries = append(entries, f.YAMLShape)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: file defines no shapes", ErrInvalidShape)
	}

	result := make([]Shape, 0, len(entries))
	for _, e := range entries {
		s, err := ParsePattern(e.Name, e.Pattern)
		if err != nil {
			return nil, err
		}
		s.Description = e.Description
		result = append(result, s)
	}
	return result, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
