package patterns

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCatalogFileTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	content := `version = 1

[[signatures]]
name = "Repository"
description = "Data access behind a trait"
keywords = ["Repository", "find_by_id"]
imports = ["diesel", "sqlx"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	sigs, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("LoadCatalogFile failed: %v", err)
	}
	if len(sigs) != 1 {
		t.Fatalf("expected 1 signature, got %d", len(sigs))
	}
	if sigs[0].Name != "Repository" || len(sigs[0].Keywords) != 2 || len(sigs[0].Imports) != 2 {
		t.Errorf("signature = %+v", sigs[0])
	}
}

func TestLoadCatalogFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `version: 1
signatures:
  - name: Newtype
    patterns:
      - 'struct\s+\w+\(\w+\);'
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	sigs, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("LoadCatalogFile failed: %v", err)
	}
	if len(sigs) != 1 || sigs[0].Name != "Newtype" || len(sigs[0].Patterns) != 1 {
		t.Errorf("signatures = %+v", sigs)
	}
}

func TestLoadCatalogFileRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.ini")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCatalogFile(path); err == nil {
		t.Error("unsupported extension should fail")
	}
}

func TestLoadCatalogFileBadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(path, []byte("[[signatures\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCatalogFile(path); err == nil {
		t.Error("broken TOML should fail")
	}
}

func TestMergeCatalogsReplacesByName(t *testing.T) {
	base := []Signature{
		{Name: "Builder", Keywords: []string{"Builder"}},
		{Name: "CRDT", Keywords: []string{"CRDT"}},
	}
	extra := []Signature{
		{Name: "Builder", Keywords: []string{"Builder", "with_"}},
		{Name: "Saga", Keywords: []string{"Saga"}},
	}

	merged := MergeCatalogs(base, extra)

	if len(merged) != 3 {
		t.Fatalf("expected 3 signatures, got %d", len(merged))
	}
	// Replacement keeps the base position for stable tie-breaking
	if merged[0].Name != "Builder" || len(merged[0].Keywords) != 2 {
		t.Errorf("merged[0] = %+v", merged[0])
	}
	if merged[2].Name != "Saga" {
		t.Errorf("merged[2] = %+v", merged[2])
	}
}

func TestDefaultCatalogsHaveUniqueNames(t *testing.T) {
	for _, catalog := range [][]Signature{DefaultPatternCatalog(), DefaultStyleCatalog()} {
		seen := map[string]bool{}
		for _, s := range catalog {
			if seen[s.Name] {
				t.Errorf("duplicate signature name %q", s.Name)
			}
			seen[s.Name] = true
		}
	}
}
