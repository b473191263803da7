// Package presets persists named enhancement parameter sets as a YAML
// file. Presets are opaque key/value maps; interpretation of the keys
// belongs to the enhance package.
package presets

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/sonavox/sonavox/enhance"
)

// Preset is one named parameter map in its flat key/value form.
type Preset map[string]float64

// storeFile is the on-disk document layout.
type storeFile struct {
	Presets map[string]Preset `yaml:"presets"`
}

// Store reads and writes a preset file.
type Store struct {
	path string
}

// NewStore creates a store backed by the YAML file at path. The file need
// not exist yet; Load on a missing file returns an empty set.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads all presets from the file.
func (s *Store) Load() (map[string]Preset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Preset{}, nil
		}
		return nil, fmt.Errorf("presets: open %q: %w", s.path, err)
	}
	defer f.Close()

	presets, err := loadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("presets: parse %q: %w", s.path, err)
	}
	return presets, nil
}

// loadFromReader decodes a preset document from r. Useful in tests where
// documents are constructed from string literals.
func loadFromReader(r io.Reader) (map[string]Preset, error) {
	doc := &storeFile{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil {
		if err == io.EOF {
			return map[string]Preset{}, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc.Presets == nil {
		doc.Presets = map[string]Preset{}
	}
	return doc.Presets, nil
}

// Save writes all presets to the file, replacing its contents.
func (s *Store) Save(presets map[string]Preset) error {
	data, err := yaml.Marshal(&storeFile{Presets: presets})
	if err != nil {
		return fmt.Errorf("presets: encode: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("presets: write %q: %w", s.path, err)
	}
	return nil
}

// Put adds or replaces one preset.
func (s *Store) Put(name string, preset Preset) error {
	presets, err := s.Load()
	if err != nil {
		return err
	}
	presets[name] = preset
	return s.Save(presets)
}

// Parameters resolves a named preset into enhancement parameters. Missing
// keys take their defaults and unknown keys are ignored, per the
// parameter map contract.
func (s *Store) Parameters(name string) (enhance.Parameters, error) {
	presets, err := s.Load()
	if err != nil {
		return enhance.Parameters{}, err
	}

	preset, ok := presets[name]
	if !ok {
		return enhance.Parameters{}, fmt.Errorf("presets: no preset named %q", name)
	}
	return enhance.ParametersFromMap(preset), nil
}

// Names returns the sorted preset names.
func (s *Store) Names() ([]string, error) {
	presets, err := s.Load()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
