// Package component describes a resolved component: its key, the namespace
// and file it was found in, and the options it is loaded with.
package component

import (
	"maps"
	"strings"

	"github.com/DeusData/component-dirs/internal/config"
	"github.com/DeusData/component-dirs/internal/directives"
	"github.com/DeusData/component-dirs/internal/identifier"
	"github.com/DeusData/component-dirs/internal/inflector"
)

const pathSeparator = "/"

// Options are the settings a component is loaded with.
type Options struct {
	Inflector    inflector.Inflector
	AutoRegister bool
	Memoize      bool
	Loader       string
	// Extra holds file directives with no dedicated field.
	Extra map[string]any
}

// MergeOptions layers, in increasing precedence, the inflector, the
// directory defaults and the per-file directive overrides.
func MergeOptions(inf inflector.Inflector, dir config.DirectoryConfig, overrides directives.Overrides) Options {
	opts := Options{
		Inflector:    inf,
		AutoRegister: dir.EffectiveAutoRegister(),
		Memoize:      dir.EffectiveMemoize(),
		Loader:       dir.EffectiveLoader(),
	}

	for k, v := range overrides {
		switch k {
		case directives.KeyAutoRegister:
			if b, ok := overrides.AutoRegister(); ok {
				opts.AutoRegister = b
				continue
			}
		case directives.KeyMemoize:
			if b, ok := overrides.Memoize(); ok {
				opts.Memoize = b
				continue
			}
		case directives.KeyLoader:
			if s, ok := overrides.Loader(); ok {
				opts.Loader = s
				continue
			}
		}
		if opts.Extra == nil {
			opts.Extra = make(map[string]any)
		}
		opts.Extra[k] = v
	}
	return opts
}

// Component is a component found in a component directory.
type Component struct {
	Identifier identifier.Identifier
	Namespace  config.Namespace
	// FilePath is absolute.
	FilePath string
	Options  Options
}

// New builds a component. The options' Extra map is copied.
func New(id identifier.Identifier, ns config.Namespace, filePath string, opts Options) *Component {
	opts.Extra = maps.Clone(opts.Extra)
	return &Component{
		Identifier: id,
		Namespace:  ns,
		FilePath:   filePath,
		Options:    opts,
	}
}

// Key returns the component key.
func (c *Component) Key() string { return c.Identifier.Key() }

// RootKey returns the first segment of the key.
func (c *Component) RootKey() string { return c.Identifier.RootKey() }

// PathInNamespace returns the key, minus the namespace key prefix, in
// slash-separated form.
func (c *Component) PathInNamespace() string {
	id := c.Identifier
	if c.Namespace.HasKey() {
		id = id.Namespaced(c.Namespace.Key, "")
	}
	return id.KeyWithSeparator(pathSeparator)
}

// ConstPath returns the slash-separated path the constant name is derived
// from: the namespace const (if any) followed by PathInNamespace.
func (c *Component) ConstPath() string {
	p := c.PathInNamespace()
	if !c.Namespace.HasConst() {
		return p
	}
	nsPath := c.Namespace.Const
	if c.Options.Inflector != nil {
		nsPath = c.Options.Inflector.Underscore(nsPath)
	}
	return strings.TrimSuffix(nsPath, pathSeparator) + pathSeparator + p
}

// ConstName returns the constant the loader is expected to find, e.g.
// "Admin::Users".
func (c *Component) ConstName() string {
	if c.Options.Inflector == nil {
		return c.ConstPath()
	}
	return c.Options.Inflector.Camelize(c.ConstPath())
}

// AutoRegister reports whether the container registers the component when
// scanning its directory.
func (c *Component) AutoRegister() bool { return c.Options.AutoRegister }

// Loadable reports whether the component is backed by a source file the
// loader can require.
func (c *Component) Loadable() bool { return c.FilePath != "" }
