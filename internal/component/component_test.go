package component

import (
	"testing"

	"github.com/DeusData/component-dirs/internal/config"
	"github.com/DeusData/component-dirs/internal/directives"
	"github.com/DeusData/component-dirs/internal/identifier"
	"github.com/DeusData/component-dirs/internal/inflector"
)

func boolPtr(b bool) *bool { return &b }

func TestMergeOptionsDefaults(t *testing.T) {
	inf := inflector.Default()
	opts := MergeOptions(inf, config.DirectoryConfig{}, nil)
	if opts.Inflector == nil {
		t.Error("inflector not carried")
	}
	if !opts.AutoRegister || opts.Memoize || opts.Loader != config.DefaultLoader {
		t.Errorf("defaults = %+v", opts)
	}
	if opts.Extra != nil {
		t.Errorf("Extra = %v, want nil", opts.Extra)
	}
}

func TestMergeOptionsPrecedence(t *testing.T) {
	dir := config.DirectoryConfig{
		AutoRegister: boolPtr(false),
		Memoize:      boolPtr(true),
		Loader:       "dir_loader",
	}

	opts := MergeOptions(nil, dir, nil)
	if opts.AutoRegister || !opts.Memoize || opts.Loader != "dir_loader" {
		t.Errorf("directory defaults not applied: %+v", opts)
	}

	overrides := directives.Overrides{
		directives.KeyAutoRegister: true,
		directives.KeyMemoize:      false,
		directives.KeyLoader:       "file_loader",
		"frozen_string_literal":    true,
	}
	opts = MergeOptions(nil, dir, overrides)
	if !opts.AutoRegister || opts.Memoize || opts.Loader != "file_loader" {
		t.Errorf("file overrides must win: %+v", opts)
	}
	if opts.Extra["frozen_string_literal"] != true {
		t.Errorf("Extra = %v", opts.Extra)
	}
	if len(opts.Extra) != 1 {
		t.Errorf("known keys leaked into Extra: %v", opts.Extra)
	}
}

func TestMergeOptionsWrongTypeKeptAsExtra(t *testing.T) {
	opts := MergeOptions(nil, config.DirectoryConfig{}, directives.Overrides{
		directives.KeyMemoize: "sometimes",
	})
	if opts.Memoize {
		t.Error("memoize should keep its default")
	}
	if opts.Extra[directives.KeyMemoize] != "sometimes" {
		t.Errorf("Extra = %v", opts.Extra)
	}
}

func TestConstName(t *testing.T) {
	inf := inflector.Default()
	tests := []struct {
		name      string
		key       string
		ns        config.Namespace
		wantPath  string
		wantConst string
	}{
		{"root", "notifiers", config.RootNamespace(), "notifiers", "Notifiers"},
		{"default ns", "admin.user_repo", config.NewNamespace("admin"), "admin/user_repo", "Admin::UserRepo"},
		{"no const", "admin.users", config.NewNamespace("admin", config.WithConst("")), "users", "Users"},
		{"const differs", "admin.users", config.NewNamespace("admin", config.WithConst("Backoffice")), "backoffice/users", "Backoffice::Users"},
		{"keyed root", "app.users", config.RootNamespace(config.WithKey("app")), "users", "Users"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(identifier.New(tt.key, "."), tt.ns, "/x.rb", Options{Inflector: inf})
			if got := c.ConstPath(); got != tt.wantPath {
				t.Errorf("ConstPath = %q, want %q", got, tt.wantPath)
			}
			if got := c.ConstName(); got != tt.wantConst {
				t.Errorf("ConstName = %q, want %q", got, tt.wantConst)
			}
		})
	}
}

func TestNewCopiesExtra(t *testing.T) {
	extra := map[string]any{"a": 1}
	c := New(identifier.New("k", "."), config.RootNamespace(), "/k.rb", Options{Extra: extra})
	extra["a"] = 2
	if c.Options.Extra["a"] != 1 {
		t.Error("Extra shares storage with caller")
	}
	if c.Key() != "k" || c.RootKey() != "k" {
		t.Errorf("Key/RootKey = %q/%q", c.Key(), c.RootKey())
	}
}

func TestLoadable(t *testing.T) {
	if !New(identifier.New("k", "."), config.RootNamespace(), "/k.rb", Options{}).Loadable() {
		t.Error("component with a file should be loadable")
	}
	if New(identifier.New("k", "."), config.RootNamespace(), "", Options{}).Loadable() {
		t.Error("component without a file should not be loadable")
	}
}
