package theme

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tartampluch/go-calendar/internal/config"
)

// Registry is an immutable, ordered set of themes. It always contains the
// default theme, which is what unknown names resolve to.
type Registry struct {
	defs  []Definition
	index map[string]int
}

var builtinRegistry = mustRegistry(builtin...)

// Builtin returns the registry of the five shipped themes.
func Builtin() *Registry {
	return builtinRegistry
}

// NewRegistry validates defs and returns them as a registry, preserving
// their order. Duplicate identifiers and a missing default are errors.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{index: make(map[string]int, len(defs))}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.index[d.ID]; dup {
			return nil, fmt.Errorf("%s: %q", config.ErrThemeDuplicate, d.ID)
		}
		r.index[d.ID] = len(r.defs)
		r.defs = append(r.defs, d.clone())
	}
	if _, ok := r.index[config.DefaultTheme]; !ok {
		return nil, errors.New(config.ErrThemeNoDefault)
	}
	return r, nil
}

func mustRegistry(defs ...Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// With returns a new registry holding r's themes followed by defs. A
// definition reusing an existing identifier replaces it in place.
func (r *Registry) With(defs ...Definition) (*Registry, error) {
	merged := make([]Definition, len(r.defs), len(r.defs)+len(defs))
	copy(merged, r.defs)
	for _, d := range defs {
		if i, ok := r.index[d.ID]; ok {
			merged[i] = d
			continue
		}
		merged = append(merged, d)
	}
	return NewRegistry(merged...)
}

// Lookup returns the theme registered under name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	i, ok := r.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i].clone(), true
}

// Get returns the theme registered under name, or the default theme.
func (r *Registry) Get(name string) Definition {
	if d, ok := r.Lookup(name); ok {
		return d
	}
	return r.defs[r.index[config.DefaultTheme]].clone()
}

// Names returns the theme identifiers in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.defs))
	for i, d := range r.defs {
		names[i] = d.ID
	}
	return names
}

// CombinedStyleSheet concatenates the CSS of every registered theme so that
// any of them can be activated by class alone.
func (r *Registry) CombinedStyleSheet() string {
	blocks := make([]string, len(r.defs))
	for i, d := range r.defs {
		blocks[i] = d.CSS()
	}
	return strings.Join(blocks, "\n")
}

// DecodeTOML reads custom themes:
//
//	[[theme]]
//	id = "forest"
//	name = "Forest"
//	[theme.colors]
//	primary = "#2d6a4f"
//	...
//	[[theme.override]]
//	selector = ".day-number"
//	properties = { color = "#1b4332" }
func DecodeTOML(rd io.Reader) ([]Definition, error) {
	var file struct {
		Themes []Definition `toml:"theme"`
	}
	if err := toml.NewDecoder(rd).Decode(&file); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrThemeDecode, err)
	}
	for _, d := range file.Themes {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	return file.Themes, nil
}
