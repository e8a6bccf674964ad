package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Namespace maps a sub-path of a component directory to a logical key
// prefix and a constant-name prefix.
//
// Key and Const default to Path. KeyExplicit/ConstExplicit record whether
// the caller set them, which is what namespace normalization keys off.
type Namespace struct {
	// Path is relative to the component directory; empty means the root
	// namespace.
	Path string
	// Key is prepended to keys found under Path; empty means no prefix.
	Key string
	// Const is the constant-name prefix, opaque to path resolution.
	Const string

	KeyExplicit   bool
	ConstExplicit bool
}

// NamespaceOption sets optional Namespace fields.
type NamespaceOption func(*Namespace)

// WithKey sets an explicit key prefix. An empty key means no prefix.
func WithKey(key string) NamespaceOption {
	return func(ns *Namespace) {
		ns.Key = key
		ns.KeyExplicit = true
	}
}

// WithConst sets an explicit constant prefix. An empty const means none.
func WithConst(c string) NamespaceOption {
	return func(ns *Namespace) {
		ns.Const = c
		ns.ConstExplicit = true
	}
}

// NewNamespace returns a namespace for path whose key and const default to
// the path itself. Leading and trailing slashes are dropped.
func NewNamespace(path string, opts ...NamespaceOption) Namespace {
	path = strings.Trim(path, "/")
	ns := Namespace{Path: path, Key: path, Const: path}
	for _, o := range opts {
		o(&ns)
	}
	return ns
}

// RootNamespace returns the namespace covering the directory root. It has
// no key or const prefix unless given.
func RootNamespace(opts ...NamespaceOption) Namespace {
	ns := Namespace{}
	for _, o := range opts {
		o(&ns)
	}
	return ns
}

// IsRoot reports whether the namespace covers the directory root.
func (ns Namespace) IsRoot() bool { return ns.Path == "" }

// HasKey reports whether keys under this namespace carry a prefix.
func (ns Namespace) HasKey() bool { return ns.Key != "" }

// HasConst reports whether the namespace carries a constant prefix.
func (ns Namespace) HasConst() bool { return ns.Const != "" }

func (ns Namespace) String() string {
	path := ns.Path
	if ns.IsRoot() {
		path = "<root>"
	}
	return fmt.Sprintf("%s => key=%q const=%q", path, ns.Key, ns.Const)
}

// UnmarshalYAML decodes {path, key, const}. A key or const present in the
// mapping is explicit, even when null.
func (ns *Namespace) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: namespace must be a mapping", node.Line)
	}

	var (
		path        string
		opts        []NamespaceOption
		pathPresent bool
	)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, value := node.Content[i].Value, node.Content[i+1]
		var s string
		if value.Tag != "!!null" {
			if err := value.Decode(&s); err != nil {
				return fmt.Errorf("namespace %s: %w", name, err)
			}
		}
		switch name {
		case "path":
			path, pathPresent = s, true
		case "key":
			opts = append(opts, WithKey(s))
		case "const":
			opts = append(opts, WithConst(s))
		default:
			return fmt.Errorf("line %d: unknown namespace field %q", node.Content[i].Line, name)
		}
	}

	if !pathPresent || strings.Trim(path, "/") == "" {
		*ns = RootNamespace(opts...)
		return nil
	}
	*ns = NewNamespace(path, opts...)
	return nil
}

// Namespaces is an ordered namespace list with at most one root.
type Namespaces struct {
	list []Namespace
}

// Add appends a namespace for path. Paths must be unique.
func (n *Namespaces) Add(path string, opts ...NamespaceOption) error {
	if strings.Trim(path, "/") == "" {
		return fmt.Errorf("namespace path must not be empty, use AddRoot")
	}
	return n.add(NewNamespace(path, opts...))
}

// AddRoot appends the root namespace. Only one is allowed.
func (n *Namespaces) AddRoot(opts ...NamespaceOption) error {
	return n.add(RootNamespace(opts...))
}

func (n *Namespaces) add(ns Namespace) error {
	for _, existing := range n.list {
		if existing.Path != ns.Path {
			continue
		}
		if ns.IsRoot() {
			return fmt.Errorf("root namespace already added")
		}
		return fmt.Errorf("namespace for path %q already added", ns.Path)
	}
	n.list = append(n.list, ns)
	return nil
}

// Len returns the number of configured namespaces.
func (n *Namespaces) Len() int { return len(n.list) }

// Root returns the configured root namespace, if any.
func (n *Namespaces) Root() (Namespace, bool) {
	for _, ns := range n.list {
		if ns.IsRoot() {
			return ns, true
		}
	}
	return Namespace{}, false
}

// All returns the namespaces in declared order. When no root namespace was
// configured a default one is appended last.
func (n *Namespaces) All() []Namespace {
	all := make([]Namespace, 0, len(n.list)+1)
	all = append(all, n.list...)
	if _, ok := n.Root(); !ok {
		all = append(all, RootNamespace())
	}
	return all
}

// UnmarshalYAML decodes a sequence of namespaces, applying the same
// uniqueness rules as Add.
func (n *Namespaces) UnmarshalYAML(node *yaml.Node) error {
	var list []Namespace
	if err := node.Decode(&list); err != nil {
		return err
	}
	n.list = nil
	for _, ns := range list {
		if err := n.add(ns); err != nil {
			return err
		}
	}
	return nil
}
