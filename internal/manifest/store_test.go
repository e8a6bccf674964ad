package manifest

import (
	"path/filepath"
	"testing"
)

func sampleEntries() []Entry {
	return []Entry{
		{Key: "admin.users", Dir: "lib", Namespace: "admin", FilePath: "/p/lib/admin/users.rb", Hash: "aa", AutoRegister: true, Loader: "require", ConstName: "Admin::Users"},
		{Key: "repo", Dir: "lib", FilePath: "/p/lib/repo.rb", Hash: "bb", AutoRegister: false, Memoize: true, Loader: "require", ConstName: "Repo",
			Extra: map[string]any{"custom": "x"}},
	}
}

func TestReplaceAndEntries(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	if err := s.Replace("app", "/p", sampleEntries()); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	got, err := s.Entries("app")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Key != "admin.users" || got[1].Key != "repo" {
		t.Errorf("order not preserved: %s, %s", got[0].Key, got[1].Key)
	}
	if got[1].AutoRegister || !got[1].Memoize {
		t.Errorf("flags not round-tripped: %+v", got[1])
	}
	if got[1].Extra["custom"] != "x" {
		t.Errorf("extra not round-tripped: %v", got[1].Extra)
	}
	if got[0].Extra != nil {
		t.Errorf("expected nil extra, got %v", got[0].Extra)
	}

	p, err := s.GetProject("app")
	if err != nil || p == nil {
		t.Fatalf("GetProject: %v, %v", p, err)
	}
	if p.RootPath != "/p" {
		t.Errorf("root path = %q", p.RootPath)
	}
}

func TestReplaceDropsPrevious(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	if err := s.Replace("app", "/p", sampleEntries()); err != nil {
		t.Fatal(err)
	}
	if err := s.Replace("app", "/p", sampleEntries()[:1]); err != nil {
		t.Fatal(err)
	}
	got, err := s.Entries("app")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 entry after replace, got %d", len(got))
	}
}

func TestReplaceRollsBackOnDuplicateKey(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	if err := s.Replace("app", "/p", sampleEntries()); err != nil {
		t.Fatal(err)
	}
	dup := append(sampleEntries(), sampleEntries()[0])
	if err := s.Replace("app", "/p", dup); err == nil {
		t.Fatal("expected error for duplicate key")
	}
	got, err := s.Entries("app")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected previous manifest to survive, got %d entries", len(got))
	}
}

func TestProjectsIsolated(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	if err := s.Replace("a", "/a", sampleEntries()); err != nil {
		t.Fatal(err)
	}
	if err := s.Replace("b", "/b", nil); err != nil {
		t.Fatal(err)
	}
	projects, err := s.ListProjects()
	if err != nil {
		t.Fatal(err)
	}
	if len(projects) != 2 || projects[0].Name != "a" || projects[1].Name != "b" {
		t.Errorf("unexpected projects: %+v", projects)
	}

	if err := s.DeleteProject("a"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Entries("a")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected cascade delete, got %d entries", len(got))
	}
	if p, _ := s.GetProject("a"); p != nil {
		t.Errorf("expected project a deleted, got %+v", p)
	}
}

func TestDiff(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	if err := s.Replace("app", "/p", sampleEntries()); err != nil {
		t.Fatal(err)
	}

	current := []Entry{
		{Key: "admin.users", FilePath: "/p/lib/admin/users.rb", Hash: "changed"},
		{Key: "mailer", FilePath: "/p/lib/mailer.rb", Hash: "cc"},
	}
	d, err := s.Diff("app", current)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(d.Added) != 1 || d.Added[0].Key != "mailer" {
		t.Errorf("added = %+v", d.Added)
	}
	if len(d.Removed) != 1 || d.Removed[0].Key != "repo" {
		t.Errorf("removed = %+v", d.Removed)
	}
	if len(d.Changed) != 1 || d.Changed[0].Hash != "changed" {
		t.Errorf("changed = %+v", d.Changed)
	}
	if d.Empty() {
		t.Error("expected non-empty diff")
	}
}

func TestDiffUnknownProject(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer s.Close()

	d, err := s.Diff("nope", sampleEntries())
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Added) != 2 || len(d.Removed) != 0 {
		t.Errorf("expected everything added, got %+v", d)
	}
}

func TestCompareIdentical(t *testing.T) {
	if d := Compare(sampleEntries(), sampleEntries()); !d.Empty() {
		t.Errorf("expected empty diff, got %+v", d)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "manifest.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Replace("app", "/p", sampleEntries()); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Entries("app")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 persisted entries, got %d", len(got))
	}
	if s.Path() != path {
		t.Errorf("Path() = %q", s.Path())
	}
}
