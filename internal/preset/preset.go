// Package preset manages reusable generation configurations.
package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-yaml"

	apperrors "github.com/yrbane/acidgrid/internal/errors"
)

// DefaultMeasures is used when a preset does not set a length.
const DefaultMeasures = 192

// Preset is a saved generation configuration. A zero Tempo and nil Swing
// or Seed mean the style default applies.
type Preset struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Style       string   `yaml:"style"`
	Tempo       int      `yaml:"tempo,omitempty"`
	Measures    int      `yaml:"measures"`
	Swing       *float64 `yaml:"swing,omitempty"`
	Seed        *int64   `yaml:"seed,omitempty"`
}

func (p Preset) clone() Preset {
	if p.Swing != nil {
		v := *p.Swing
		p.Swing = &v
	}
	if p.Seed != nil {
		v := *p.Seed
		p.Seed = &v
	}
	return p
}

// DefaultDir returns the user preset directory under the home directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".acidgrid", "presets"), nil
}

// Store reads and writes user presets in a directory. Builtin presets are
// layered underneath and cannot be changed.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Get returns a preset by name, checking builtins first.
func (s *Store) Get(name string) (Preset, error) {
	if p, ok := Builtin(name); ok {
		return p, nil
	}

	path := filepath.Join(s.dir, name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Preset{}, fmt.Errorf("%w: %q", apperrors.ErrPresetNotFound, name)
		}
		return Preset{}, fmt.Errorf("read %s: %w", path, err)
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	if p.Measures <= 0 {
		p.Measures = DefaultMeasures
	}
	return p, nil
}

// Save writes a custom preset. Builtin names are reserved. Unless overwrite
// is set, an existing custom preset is not replaced.
func (s *Store) Save(p Preset, overwrite bool) error {
	if p.Name == "" {
		return fmt.Errorf("preset name is empty")
	}
	if _, ok := Builtin(p.Name); ok {
		return fmt.Errorf("%w: %q", apperrors.ErrPresetProtected, p.Name)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create preset dir: %w", err)
	}

	path := filepath.Join(s.dir, p.Name+".yaml")
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("preset %q already exists", p.Name)
		}
	}

	data, err := yaml.Marshal(&p)
	if err != nil {
		return fmt.Errorf("marshal preset %q: %w", p.Name, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Delete removes a custom preset. Builtins cannot be deleted.
func (s *Store) Delete(name string) error {
	if _, ok := Builtin(name); ok {
		return fmt.Errorf("%w: %q", apperrors.ErrPresetProtected, name)
	}

	path := filepath.Join(s.dir, name+".yaml")
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %q", apperrors.ErrPresetNotFound, name)
		}
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// List returns all preset names, builtin and custom, sorted.
func (s *Store) List() ([]string, error) {
	custom, err := s.CustomNames()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, name := range append(BuiltinNames(), custom...) {
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// CustomNames returns the names of user presets on disk.
func (s *Store) CustomNames() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list presets: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, name[:len(name)-len(ext)])
		}
	}
	return names, nil
}
