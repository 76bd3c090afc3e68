// Package manifest reads Cargo.toml files to recover package and workspace
// metadata. The manifest is an optional input: a missing or undecodable
// manifest degrades to an empty result, never a failed analysis.
package manifest

import (
	"os"
	"path/filepath"
	"sort"

	toml "github.com/pelletier/go-toml/v2"

	"rasr/internal/logging"
	"rasr/internal/patterns"
	"rasr/internal/paths"
)

// Package is one workspace package
type Package struct {
	Name         string   `json:"name"`
	Version      string   `json:"version,omitempty"`
	Description  string   `json:"description,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	Features     []string `json:"features,omitempty"`
}

// Manifest is the decoded view of a project's Cargo.toml, plus the raw text
// used as detector input.
type Manifest struct {
	// Raw is the root manifest text, empty when no Cargo.toml exists
	Raw string `json:"-"`

	IsWorkspace  bool      `json:"isWorkspace"`
	PackageCount int       `json:"packageCount"`
	Packages     []Package `json:"packages,omitempty"`
	Members      []string  `json:"members,omitempty"`
}

// Shape returns the workspace facts the style heuristics consume
func (m *Manifest) Shape() patterns.WorkspaceShape {
	return patterns.WorkspaceShape{
		IsWorkspace:  m.IsWorkspace,
		PackageCount: m.PackageCount,
	}
}

// cargoFile mirrors the Cargo.toml sections we care about
type cargoFile struct {
	Package      *cargoPackage          `toml:"package"`
	Workspace    *cargoWorkspace        `toml:"workspace"`
	Dependencies map[string]interface{} `toml:"dependencies"`
	Features     map[string]interface{} `toml:"features"`
}

type cargoPackage struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
}

type cargoWorkspace struct {
	Members []string `toml:"members"`
}

// Load reads projectRoot/Cargo.toml. It never fails: missing file yields an
// empty manifest and a malformed file yields the raw text with zero
// metadata, both logged and carried on.
func Load(projectRoot string, logger *logging.Logger) *Manifest {
	data, err := os.ReadFile(filepath.Join(projectRoot, "Cargo.toml"))
	if err != nil {
		logger.Debug("No manifest found", map[string]interface{}{
			"projectRoot": projectRoot,
		})
		return &Manifest{}
	}

	m := &Manifest{Raw: string(data)}

	var root cargoFile
	if err := toml.Unmarshal(data, &root); err != nil {
		logger.Warn("Manifest could not be decoded, continuing without metadata", map[string]interface{}{
			"error": err.Error(),
		})
		return m
	}

	if root.Package != nil {
		m.Packages = append(m.Packages, toPackage(&root))
	}

	if root.Workspace != nil && len(root.Workspace.Members) > 0 {
		m.Members = expandMembers(projectRoot, root.Workspace.Members)
		for _, member := range m.Members {
			pkg, ok := loadMemberPackage(projectRoot, member, logger)
			if !ok {
				continue
			}
			m.Packages = append(m.Packages, pkg)
		}
	}

	m.PackageCount = len(m.Packages)
	m.IsWorkspace = m.PackageCount > 1

	return m
}

// toPackage flattens a decoded cargo file into a Package with sorted
// dependency and feature names.
func toPackage(file *cargoFile) Package {
	pkg := Package{
		Name:        file.Package.Name,
		Version:     file.Package.Version,
		Description: file.Package.Description,
	}
	for name := range file.Dependencies {
		pkg.Dependencies = append(pkg.Dependencies, name)
	}
	for name := range file.Features {
		pkg.Features = append(pkg.Features, name)
	}
	sort.Strings(pkg.Dependencies)
	sort.Strings(pkg.Features)
	return pkg
}

// expandMembers resolves member entries, including glob entries such as
// "crates/*", into sorted member directories that contain a Cargo.toml.
func expandMembers(projectRoot string, members []string) []string {
	seen := map[string]bool{}
	var out []string

	for _, member := range members {
		matches, err := filepath.Glob(paths.JoinRepoPath(projectRoot, member))
		if err != nil || matches == nil {
			continue
		}
		for _, match := range matches {
			if _, err := os.Stat(filepath.Join(match, "Cargo.toml")); err != nil {
				continue
			}
			rel := paths.RelativeTo(match, projectRoot)
			if !seen[rel] {
				seen[rel] = true
				out = append(out, rel)
			}
		}
	}

	sort.Strings(out)
	return out
}

// loadMemberPackage decodes one member crate's Cargo.toml, best effort
func loadMemberPackage(projectRoot string, member string, logger *logging.Logger) (Package, bool) {
	data, err := os.ReadFile(filepath.Join(paths.JoinRepoPath(projectRoot, member), "Cargo.toml"))
	if err != nil {
		return Package{}, false
	}

	var file cargoFile
	if err := toml.Unmarshal(data, &file); err != nil {
		logger.Warn("Skipping undecodable member manifest", map[string]interface{}{
			"member": member,
			"error":  err.Error(),
		})
		return Package{}, false
	}
	if file.Package == nil {
		return Package{}, false
	}

	return toPackage(&file), true
}
