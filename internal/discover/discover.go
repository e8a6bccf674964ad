package discover

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileInfo represents a discovered source file.
type FileInfo struct {
	Path    string // absolute path
	RelPath string // relative to the discovery root, slash-separated
}

// Options configures file discovery.
type Options struct {
	// Extension selects source files, e.g. ".rb". Empty matches every file.
	Extension string
}

// isHidden reports whether a file or directory name is skipped the way a
// shell "**/*" glob skips it.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Discover walks root recursively and returns every file with the
// configured extension, sorted by path. A missing root is an error wrapping
// fs.ErrNotExist.
func Discover(ctx context.Context, root string, opts *Options) ([]FileInfo, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("discover %s: not a directory", root)
	}

	var ext string
	if opts != nil {
		ext = opts.Extension
	}

	var files []FileInfo

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			return walkErr
		}
		if path == root {
			return nil
		}

		if isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		if ext != "" && !strings.HasSuffix(d.Name(), ext) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, FileInfo{
			Path:    path,
			RelPath: filepath.ToSlash(rel),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}
