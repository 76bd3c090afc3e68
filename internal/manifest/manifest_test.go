package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"rasr/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{Level: logging.ErrorLevel})
}

func writeManifest(t *testing.T, root string, rel string, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSingleCrate(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "Cargo.toml", `[package]
name = "widget"
version = "0.3.1"
description = "A widget library"

[dependencies]
serde = { version = "1", features = ["derive"] }
tokio = "1"

[features]
default = []
extra = ["serde/derive"]
`)

	m := Load(root, testLogger())

	if m.IsWorkspace {
		t.Error("single crate must not be a workspace")
	}
	if m.PackageCount != 1 {
		t.Fatalf("PackageCount = %d, want 1", m.PackageCount)
	}

	pkg := m.Packages[0]
	if pkg.Name != "widget" || pkg.Version != "0.3.1" || pkg.Description != "A widget library" {
		t.Errorf("package = %+v", pkg)
	}
	if !reflect.DeepEqual(pkg.Dependencies, []string{"serde", "tokio"}) {
		t.Errorf("dependencies = %v", pkg.Dependencies)
	}
	if !reflect.DeepEqual(pkg.Features, []string{"default", "extra"}) {
		t.Errorf("features = %v", pkg.Features)
	}
	if m.Raw == "" {
		t.Error("raw manifest text must be preserved")
	}
}

func TestLoadWorkspace(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "Cargo.toml", `[workspace]
members = ["crates/*", "tools/cli"]
`)
	writeManifest(t, root, "crates/core/Cargo.toml", "[package]\nname = \"core\"\n")
	writeManifest(t, root, "crates/proto/Cargo.toml", "[package]\nname = \"proto\"\n")
	writeManifest(t, root, "tools/cli/Cargo.toml", "[package]\nname = \"cli\"\n")
	// a directory the glob matches but which holds no manifest
	if err := os.MkdirAll(filepath.Join(root, "crates", "empty"), 0755); err != nil {
		t.Fatal(err)
	}

	m := Load(root, testLogger())

	if !m.IsWorkspace {
		t.Error("multi-package manifest must be a workspace")
	}
	if m.PackageCount != 3 {
		t.Errorf("PackageCount = %d, want 3", m.PackageCount)
	}
	if !reflect.DeepEqual(m.Members, []string{"crates/core", "crates/proto", "tools/cli"}) {
		t.Errorf("members = %v", m.Members)
	}
}

func TestLoadWorkspaceWithRootPackage(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "Cargo.toml", `[package]
name = "root-crate"

[workspace]
members = ["sub"]
`)
	writeManifest(t, root, "sub/Cargo.toml", "[package]\nname = \"sub\"\n")

	m := Load(root, testLogger())

	if m.PackageCount != 2 {
		t.Fatalf("PackageCount = %d, want 2 (root plus member)", m.PackageCount)
	}
	if m.Packages[0].Name != "root-crate" || m.Packages[1].Name != "sub" {
		t.Errorf("packages = %+v", m.Packages)
	}
}

func TestLoadMissingManifest(t *testing.T) {
	m := Load(t.TempDir(), testLogger())

	if m.Raw != "" || m.IsWorkspace || m.PackageCount != 0 {
		t.Errorf("missing manifest must yield an empty result, got %+v", m)
	}
}

func TestLoadMalformedManifest(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "Cargo.toml", "[package\nname =")

	m := Load(root, testLogger())

	if m.PackageCount != 0 {
		t.Errorf("malformed manifest must carry no metadata, got %+v", m)
	}
	if m.Raw == "" {
		t.Error("raw text is still usable as detector input")
	}
}

func TestShape(t *testing.T) {
	m := &Manifest{IsWorkspace: true, PackageCount: 5}
	shape := m.Shape()
	if !shape.IsWorkspace || shape.PackageCount != 5 {
		t.Errorf("shape = %+v", shape)
	}
}
