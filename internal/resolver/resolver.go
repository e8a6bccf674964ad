// Package resolver maps between a component directory on disk and the
// component keys the container looks components up by.
//
// A directory is split into namespaces, each mapping a sub-path to a key
// prefix. Point lookup turns a key into a candidate file per namespace, in
// declared order, and returns the first that exists. Enumeration walks each
// namespace's files and turns every path back into a key. Nothing is
// cached: every call goes to the filesystem.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/DeusData/component-dirs/internal/component"
	"github.com/DeusData/component-dirs/internal/config"
	"github.com/DeusData/component-dirs/internal/directives"
	"github.com/DeusData/component-dirs/internal/discover"
	"github.com/DeusData/component-dirs/internal/identifier"
	"github.com/DeusData/component-dirs/internal/inflector"
)

// pathSeparator is the separator used in namespace paths and relative file
// paths. Paths are converted to OS form only when touching the filesystem.
const pathSeparator = "/"

// Resolver resolves components within one component directory.
type Resolver struct {
	root      string
	separator string
	extension string
	inflector inflector.Inflector
	dir       config.DirectoryConfig
	parse     directives.Func
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDirectiveParser replaces the parser used to read per-file options.
func WithDirectiveParser(fn directives.Func) Option {
	return func(r *Resolver) { r.parse = fn }
}

// WithInflector replaces the container's inflector.
func WithInflector(inf inflector.Inflector) Option {
	return func(r *Resolver) { r.inflector = inf }
}

// New returns a Resolver for dir within the container described by cfg.
func New(cfg *config.ContainerConfig, dir config.DirectoryConfig, opts ...Option) *Resolver {
	root := cfg.Root
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	r := &Resolver{
		root:      root,
		separator: cfg.Separator,
		extension: cfg.Extension,
		inflector: cfg.Inflector(),
		dir:       dir,
		parse:     directives.Parse,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Dir returns the directory configuration.
func (r *Resolver) Dir() config.DirectoryConfig { return r.dir }

// FullPath returns the absolute path of the component directory.
func (r *Resolver) FullPath() string {
	return filepath.Join(r.root, filepath.FromSlash(r.dir.Path))
}

// Namespaces returns the directory's namespaces in declared order, each
// normalized for the container's key separator.
func (r *Resolver) Namespaces() []config.Namespace {
	all := r.dir.Namespaces.All()
	for i, ns := range all {
		all[i] = NormalizeNamespace(ns, r.separator)
	}
	return all
}

// NormalizeNamespace rewrites a nested namespace whose key defaulted to its
// path so the key uses separator instead of "/". Namespaces with an
// explicit key, or without a nested path, are returned unchanged. The
// result is marked explicit, so normalizing twice is a no-op.
func NormalizeNamespace(ns config.Namespace, separator string) config.Namespace {
	if ns.KeyExplicit || !strings.Contains(ns.Path, pathSeparator) {
		return ns
	}
	ns.Key = strings.ReplaceAll(ns.Key, pathSeparator, separator)
	ns.KeyExplicit = true
	return ns
}

// ComponentForIdentifier finds the component for key. It returns nil, nil
// when no namespace has a matching file, including when the directory
// itself does not exist.
func (r *Resolver) ComponentForIdentifier(key string) (*component.Component, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	namespaces := r.Namespaces()
	for _, ns := range namespaces {
		id := identifier.New(key, r.separator)
		if !id.StartsWith(ns.Key) {
			continue
		}

		path, err := r.findComponentFile(id, ns, namespaces)
		if err != nil {
			return nil, err
		}
		if path == "" {
			continue
		}

		slog.Debug("resolver.lookup", "key", key, "namespace", ns.Path, "path", path)
		return r.build(id, ns, path)
	}

	slog.Debug("resolver.miss", "key", key, "dir", r.dir.Path)
	return nil, nil
}

// findComponentFile returns the absolute path of the file for id within ns,
// or "" if there is none.
func (r *Resolver) findComponentFile(id identifier.Identifier, ns config.Namespace, namespaces []config.Namespace) (string, error) {
	if ns.HasKey() {
		id = id.Namespaced(ns.Key, "")
	}
	if !validSegments(id.Segments()) {
		return "", nil
	}

	rel := id.KeyWithSeparator(pathSeparator) + r.extension
	if ns.IsRoot() {
		// The root namespace never claims a file another namespace owns.
		if claimedByOther(rel, namespaces) {
			return "", nil
		}
	} else {
		rel = ns.Path + pathSeparator + rel
	}

	path := filepath.Join(r.FullPath(), filepath.FromSlash(rel))
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return "", nil
		}
		return path, nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return "", nil
	default:
		return "", err
	}
}

// validSegments rejects keys that cannot have come from a file path, so a
// lookup never leaves the component directory.
func validSegments(segments []string) bool {
	if len(segments) == 0 {
		return false
	}
	for _, s := range segments {
		if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
			return false
		}
	}
	return true
}

// claimedByOther reports whether rel, relative to the directory root, lies
// under another namespace's path. The comparison is a literal string
// prefix: a namespace "adm" also claims "admin/users.rb".
func claimedByOther(rel string, namespaces []config.Namespace) bool {
	for _, ns := range namespaces {
		if ns.IsRoot() {
			continue
		}
		if strings.HasPrefix(rel, ns.Path) {
			return true
		}
	}
	return false
}

// EachComponent returns a sequence of every component in the directory,
// namespace by namespace in declared order, files sorted within each. A
// missing directory yields a single *DirectoryNotFoundError. The sequence
// stops at the first error. Each iteration rescans the filesystem.
func (r *Resolver) EachComponent(ctx context.Context) iter.Seq2[*component.Component, error] {
	return func(yield func(*component.Component, error) bool) {
		fullPath := r.FullPath()
		info, err := os.Stat(fullPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			yield(nil, err)
			return
		}
		if err != nil || !info.IsDir() {
			yield(nil, &DirectoryNotFoundError{Path: fullPath})
			return
		}

		namespaces := r.Namespaces()
		for _, ns := range namespaces {
			files, err := r.files(ctx, ns, namespaces)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, f := range files {
				c, err := r.componentForPath(f, ns)
				if !yield(c, err) || err != nil {
					return
				}
			}
		}
	}
}

// Components collects EachComponent.
func (r *Resolver) Components(ctx context.Context) ([]*component.Component, error) {
	var out []*component.Component
	for c, err := range r.EachComponent(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// files lists the source files owned by ns. RelPath is relative to the
// component directory, not to the namespace.
func (r *Resolver) files(ctx context.Context, ns config.Namespace, namespaces []config.Namespace) ([]discover.FileInfo, error) {
	opts := &discover.Options{Extension: r.extension}

	if !ns.IsRoot() {
		files, err := discover.Discover(ctx, filepath.Join(r.FullPath(), filepath.FromSlash(ns.Path)), opts)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		for i := range files {
			files[i].RelPath = ns.Path + pathSeparator + files[i].RelPath
		}
		return files, nil
	}

	files, err := discover.Discover(ctx, r.FullPath(), opts)
	if err != nil {
		return nil, err
	}
	owned := files[:0]
	for _, f := range files {
		if !claimedByOther(f.RelPath, namespaces) {
			owned = append(owned, f)
		}
	}
	return owned, nil
}

// componentForPath derives the key for a discovered file: the relative path
// minus extension, split into words and joined with the separator, then
// moved from the namespace's path-derived prefix to its key prefix. The
// path-derived prefix is split the same way, so a namespace path with
// non-word characters ("admin-panel") is still stripped.
func (r *Resolver) componentForPath(f discover.FileInfo, ns config.Namespace) (*component.Component, error) {
	words := inflector.Words(strings.TrimSuffix(f.RelPath, r.extension))
	id := identifier.New(strings.Join(words, r.separator), r.separator)

	var from string
	if !ns.IsRoot() {
		from = strings.Join(inflector.Words(ns.Path), r.separator)
	}
	id = id.Namespaced(from, ns.Key)

	return r.build(id, ns, f.Path)
}

func (r *Resolver) build(id identifier.Identifier, ns config.Namespace, path string) (*component.Component, error) {
	overrides, err := r.parse(path)
	if err != nil {
		return nil, fmt.Errorf("component %s: %w", id.Key(), err)
	}
	opts := component.MergeOptions(r.inflector, r.dir, overrides)
	return component.New(id, ns, path, opts), nil
}
