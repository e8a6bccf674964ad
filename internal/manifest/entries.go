package manifest

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// Project is a stored manifest header.
type Project struct {
	Name      string
	IndexedAt string
	RootPath  string
}

// Entry is one component in a manifest.
type Entry struct {
	Key          string         `json:"key"`
	Dir          string         `json:"dir"`
	Namespace    string         `json:"namespace"`
	FilePath     string         `json:"file_path"`
	Hash         string         `json:"hash"`
	AutoRegister bool           `json:"auto_register"`
	Memoize      bool           `json:"memoize"`
	Loader       string         `json:"loader"`
	ConstName    string         `json:"const_name"`
	Extra        map[string]any `json:"extra,omitempty"`
}

// Diff is the difference between a stored manifest and a fresh scan.
type Diff struct {
	Added   []Entry `json:"added"`
	Removed []Entry `json:"removed"`
	// Changed holds the current entry for keys whose file or content hash
	// moved.
	Changed []Entry `json:"changed"`
}

// Empty reports whether nothing changed.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// GetProject returns a project by name, or nil if it was never stored.
func (s *Store) GetProject(name string) (*Project, error) {
	var p Project
	err := s.q.QueryRow("SELECT name, indexed_at, root_path FROM projects WHERE name=?", name).
		Scan(&p.Name, &p.IndexedAt, &p.RootPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProjects returns all stored projects.
func (s *Store) ListProjects() ([]*Project, error) {
	rows, err := s.q.Query("SELECT name, indexed_at, root_path FROM projects ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []*Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.Name, &p.IndexedAt, &p.RootPath); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}

// DeleteProject deletes a project and its entries (CASCADE).
func (s *Store) DeleteProject(name string) error {
	_, err := s.q.Exec("DELETE FROM projects WHERE name=?", name)
	return err
}

// Replace stores entries as the manifest of project, dropping whatever was
// stored before. Entry order is preserved.
func (s *Store) Replace(project, rootPath string, entries []Entry) error {
	return s.WithTransaction(func(tx *Store) error {
		if _, err := tx.q.Exec(`
			INSERT INTO projects (name, indexed_at, root_path) VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET indexed_at=excluded.indexed_at, root_path=excluded.root_path`,
			project, Now(), rootPath); err != nil {
			return fmt.Errorf("upsert project: %w", err)
		}
		if _, err := tx.q.Exec("DELETE FROM components WHERE project=?", project); err != nil {
			return fmt.Errorf("clear components: %w", err)
		}
		for i, e := range entries {
			if _, err := tx.q.Exec(`
				INSERT INTO components (project, key, position, dir, namespace, file_path, hash, auto_register, memoize, loader, const_name, options)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				project, e.Key, i, e.Dir, e.Namespace, e.FilePath, e.Hash,
				e.AutoRegister, e.Memoize, e.Loader, e.ConstName, marshalProps(e.Extra)); err != nil {
				return fmt.Errorf("insert component %s: %w", e.Key, err)
			}
		}
		slog.Info("manifest.replace", "project", project, "components", len(entries))
		return nil
	})
}

// Entries returns the stored manifest of project in stored order.
func (s *Store) Entries(project string) ([]Entry, error) {
	rows, err := s.q.Query(`
		SELECT key, dir, namespace, file_path, hash, auto_register, memoize, loader, const_name, options
		FROM components WHERE project=? ORDER BY position`, project)
	if err != nil {
		return nil, fmt.Errorf("entries: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var (
			e     Entry
			props string
		)
		if err := rows.Scan(&e.Key, &e.Dir, &e.Namespace, &e.FilePath, &e.Hash,
			&e.AutoRegister, &e.Memoize, &e.Loader, &e.ConstName, &props); err != nil {
			return nil, err
		}
		e.Extra = unmarshalProps(props)
		result = append(result, e)
	}
	return result, rows.Err()
}

// Diff compares the stored manifest of project with current.
func (s *Store) Diff(project string, current []Entry) (Diff, error) {
	stored, err := s.Entries(project)
	if err != nil {
		return Diff{}, err
	}
	return Compare(stored, current), nil
}

// Compare returns the changes from previous to current, keyed by
// component key. Output follows the order of the respective input.
func Compare(previous, current []Entry) Diff {
	prev := make(map[string]Entry, len(previous))
	for _, e := range previous {
		prev[e.Key] = e
	}
	cur := make(map[string]bool, len(current))

	var d Diff
	for _, e := range current {
		cur[e.Key] = true
		old, ok := prev[e.Key]
		switch {
		case !ok:
			d.Added = append(d.Added, e)
		case old.FilePath != e.FilePath || old.Hash != e.Hash:
			d.Changed = append(d.Changed, e)
		}
	}
	for _, e := range previous {
		if !cur[e.Key] {
			d.Removed = append(d.Removed, e)
		}
	}
	return d
}
