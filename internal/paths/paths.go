// Package paths provides path normalization helpers shared by the scanner
// and exporters. All analysis output uses forward-slash, project-relative
// paths regardless of platform.
package paths

import (
	"path/filepath"
	"strings"
)

// NormalizePath normalizes a path by converting backslashes to forward slashes
func NormalizePath(path string) string {
	return filepath.ToSlash(path)
}

// RelativeTo makes path relative to root and normalizes it. If path cannot
// be made relative, the normalized input is returned unchanged.
func RelativeTo(path string, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return NormalizePath(path)
	}
	return NormalizePath(rel)
}

// Stem returns the file name without its extension, e.g. "src/parser.rs" -> "parser"
func Stem(path string) string {
	base := filepath.Base(NormalizePath(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParentDir returns the immediate parent directory name of a normalized
// relative path, or "" when the path has no parent segment.
func ParentDir(path string) string {
	dir := filepath.Dir(NormalizePath(path))
	if dir == "." || dir == "/" {
		return ""
	}
	parts := strings.Split(NormalizePath(dir), "/")
	return parts[len(parts)-1]
}

// JoinRepoPath joins a project root with a normalized relative path using
// OS-specific separators.
func JoinRepoPath(root string, relPath string) string {
	parts := strings.Split(NormalizePath(relPath), "/")
	return filepath.Join(append([]string{root}, parts...)...)
}
