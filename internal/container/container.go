// Package container combines the resolvers of every configured component
// directory behind a single lookup surface.
package container

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/DeusData/component-dirs/internal/component"
	"github.com/DeusData/component-dirs/internal/config"
	"github.com/DeusData/component-dirs/internal/manifest"
	"github.com/DeusData/component-dirs/internal/resolver"
)

// Container resolves components across its component directories, in the
// order they are configured.
type Container struct {
	cfg       *config.ContainerConfig
	resolvers []*resolver.Resolver
}

// New validates cfg and builds one resolver per component directory.
func New(cfg *config.ContainerConfig, opts ...resolver.Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("container: %w", err)
	}
	c := &Container{cfg: cfg}
	for _, d := range cfg.ComponentDirs {
		c.resolvers = append(c.resolvers, resolver.New(cfg, d, opts...))
	}
	return c, nil
}

// Config returns the container configuration.
func (c *Container) Config() *config.ContainerConfig { return c.cfg }

// Resolvers returns the per-directory resolvers in configured order.
func (c *Container) Resolvers() []*resolver.Resolver { return c.resolvers }

// Resolver returns the resolver for the component directory at path.
func (c *Container) Resolver(path string) (*resolver.Resolver, bool) {
	for _, r := range c.resolvers {
		if filepath.Clean(r.Dir().Path) == filepath.Clean(path) {
			return r, true
		}
	}
	return nil, false
}

// Resolve returns the component for key from the first directory that has
// it, or nil if none does.
func (c *Container) Resolve(key string) (*component.Component, error) {
	for _, r := range c.resolvers {
		comp, err := r.ComponentForIdentifier(key)
		if err != nil {
			return nil, fmt.Errorf("resolve %s in %s: %w", key, r.Dir().Path, err)
		}
		if comp != nil {
			return comp, nil
		}
	}
	return nil, nil
}

// Components returns every component of every directory. Directories that
// do not exist are skipped with a warning.
func (c *Container) Components(ctx context.Context) ([]*component.Component, error) {
	var all []*component.Component
	for _, r := range c.resolvers {
		comps, err := dirComponents(ctx, r)
		if err != nil {
			return nil, err
		}
		all = append(all, comps...)
	}
	return all, nil
}

// AutoRegistered returns the components the container registers on its own
// when scanning directories.
func (c *Container) AutoRegistered(ctx context.Context) ([]*component.Component, error) {
	all, err := c.Components(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, comp := range all {
		if comp.AutoRegister() {
			out = append(out, comp)
		}
	}
	return out, nil
}

func dirComponents(ctx context.Context, r *resolver.Resolver) ([]*component.Component, error) {
	comps, err := r.Components(ctx)
	if errors.Is(err, resolver.ErrDirectoryNotFound) {
		slog.Warn("container.dir.missing", "dir", r.Dir().Path, "path", r.FullPath())
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", r.Dir().Path, err)
	}
	return comps, nil
}

// Manifest scans all directories concurrently and returns one entry per
// component, with a content hash of its file. Entries keep directory order.
func (c *Container) Manifest(ctx context.Context) ([]manifest.Entry, error) {
	results := make([][]manifest.Entry, len(c.resolvers))

	numWorkers := runtime.NumCPU()
	if numWorkers > len(c.resolvers) {
		numWorkers = len(c.resolvers)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(numWorkers, 1))
	for i, r := range c.resolvers {
		g.Go(func() error {
			comps, err := dirComponents(gctx, r)
			if err != nil {
				return err
			}
			entries := make([]manifest.Entry, 0, len(comps))
			for _, comp := range comps {
				if err := gctx.Err(); err != nil {
					return err
				}
				e, err := entryFor(r.Dir().Path, comp)
				if err != nil {
					return err
				}
				entries = append(entries, e)
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []manifest.Entry
	for _, entries := range results {
		all = append(all, entries...)
	}
	slog.Info("container.manifest", "dirs", len(c.resolvers), "components", len(all))
	return all, nil
}

func entryFor(dir string, comp *component.Component) (manifest.Entry, error) {
	hash, err := fileHash(comp.FilePath)
	if err != nil {
		return manifest.Entry{}, fmt.Errorf("hash %s: %w", comp.FilePath, err)
	}
	return manifest.Entry{
		Key:          comp.Key(),
		Dir:          dir,
		Namespace:    comp.Namespace.Path,
		FilePath:     comp.FilePath,
		Hash:         hash,
		AutoRegister: comp.Options.AutoRegister,
		Memoize:      comp.Options.Memoize,
		Loader:       comp.Options.Loader,
		ConstName:    comp.ConstName(),
		Extra:        comp.Options.Extra,
	}, nil
}

// fileHash returns the hex xxh3 digest of a file's contents.
func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ProjectName derives a manifest project name from the container root by
// replacing path separators with dashes.
func (c *Container) ProjectName() string {
	root := c.cfg.Root
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	name := strings.ReplaceAll(filepath.ToSlash(filepath.Clean(root)), "/", "-")
	name = strings.TrimLeft(name, "-")
	if name == "" {
		return "root"
	}
	return name
}
