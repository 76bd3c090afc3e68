package patterns

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	rasrerrors "rasr/internal/errors"
)

// CatalogFile is the on-disk layout of a signature catalog
type CatalogFile struct {
	Version    int         `toml:"version" yaml:"version"`
	Signatures []Signature `toml:"signatures" yaml:"signatures"`
}

// LoadCatalogFile reads a signature catalog from a .toml or .yaml file.
// Signatures loaded this way are merged on top of the built-in catalogs by
// the caller.
func LoadCatalogFile(path string) ([]Signature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rasrerrors.New(rasrerrors.CatalogInvalid,
			fmt.Sprintf("cannot read catalog %s", path), err)
	}

	var file CatalogFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, rasrerrors.New(rasrerrors.CatalogInvalid,
				fmt.Sprintf("invalid TOML catalog %s", path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, rasrerrors.New(rasrerrors.CatalogInvalid,
				fmt.Sprintf("invalid YAML catalog %s", path), err)
		}
	default:
		return nil, rasrerrors.New(rasrerrors.CatalogInvalid,
			fmt.Sprintf("unsupported catalog format %s", filepath.Ext(path)), nil)
	}

	return file.Signatures, nil
}

// MergeCatalogs appends extra signatures after the base catalog. A later
// signature with the same name replaces the earlier one in place, keeping
// declaration order stable for tie-breaking.
func MergeCatalogs(base []Signature, extra []Signature) []Signature {
	merged := make([]Signature, len(base))
	copy(merged, base)

	index := make(map[string]int, len(merged))
	for i, s := range merged {
		index[s.Name] = i
	}

	for _, s := range extra {
		if i, ok := index[s.Name]; ok {
			merged[i] = s
			continue
		}
		index[s.Name] = len(merged)
		merged = append(merged, s)
	}

	return merged
}
