package config

import "testing"

func TestNewNamespaceDefaults(t *testing.T) {
	ns := NewNamespace("admin")
	if ns.Key != "admin" || ns.Const != "admin" {
		t.Errorf("defaults = %+v", ns)
	}
	if ns.KeyExplicit || ns.ConstExplicit {
		t.Errorf("defaults should not be explicit: %+v", ns)
	}
	if ns.IsRoot() {
		t.Error("admin namespace is not root")
	}

	ns = NewNamespace("admin", WithKey(""), WithConst("Backoffice"))
	if ns.HasKey() || !ns.KeyExplicit {
		t.Errorf("explicit empty key = %+v", ns)
	}
	if ns.Const != "Backoffice" || !ns.ConstExplicit {
		t.Errorf("explicit const = %+v", ns)
	}
}

func TestRootNamespace(t *testing.T) {
	ns := RootNamespace()
	if !ns.IsRoot() || ns.HasKey() || ns.HasConst() {
		t.Errorf("root = %+v", ns)
	}
	ns = RootNamespace(WithKey("app"))
	if !ns.IsRoot() || ns.Key != "app" {
		t.Errorf("keyed root = %+v", ns)
	}
}

func TestNamespacesAdd(t *testing.T) {
	var n Namespaces
	if err := n.Add("admin"); err != nil {
		t.Fatal(err)
	}
	if err := n.AddRoot(); err != nil {
		t.Fatal(err)
	}
	if err := n.Add("reports", WithKey("rpt")); err != nil {
		t.Fatal(err)
	}

	if err := n.Add("admin"); err == nil {
		t.Error("expected duplicate path error")
	}
	if err := n.AddRoot(WithKey("x")); err == nil {
		t.Error("expected duplicate root error")
	}
	if err := n.Add(""); err == nil {
		t.Error("expected empty path error")
	}

	all := n.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 namespaces, got %d", len(all))
	}
	if all[0].Path != "admin" || !all[1].IsRoot() || all[2].Key != "rpt" {
		t.Errorf("order not preserved: %v", all)
	}
	if n.Len() != 3 {
		t.Errorf("Len = %d", n.Len())
	}
}

func TestNamespacesDefaultRootAppended(t *testing.T) {
	var n Namespaces
	if err := n.Add("admin"); err != nil {
		t.Fatal(err)
	}
	all := n.All()
	if len(all) != 2 || !all[1].IsRoot() {
		t.Fatalf("expected default root last, got %v", all)
	}
	if n.Len() != 1 {
		t.Errorf("All must not mutate the list, Len = %d", n.Len())
	}
	if _, ok := n.Root(); ok {
		t.Error("Root should report no configured root")
	}
}
