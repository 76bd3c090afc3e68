// Package scanner enumerates candidate Rust source files under a project
// root. Test, bench and example code is excluded by path-substring rules so
// downstream extraction and scoring see production code only.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"rasr/internal/config"
	rasrerrors "rasr/internal/errors"
	"rasr/internal/logging"
	"rasr/internal/paths"
)

// excludePathPatterns mark test/bench/example files. A file is excluded when
// its project-relative path contains one of these, or ends with the pattern
// stripped of slashes.
var excludePathPatterns = []string{
	"/tests/", "/test/", "/benches/", "/bench/", "/examples/", "/example/",
	"_test.rs", "_tests.rs", "_bench.rs", "/fuzz/", "/stress/",
}

// SourceFile is one decoded source file
type SourceFile struct {
	// Path is project-relative with forward slashes
	Path string

	// Text is the decoded file content. Invalid UTF-8 bytes are replaced,
	// never fatal.
	Text string
}

// Scanner walks a project root for source files
type Scanner struct {
	cfg    *config.ScanConfig
	logger *logging.Logger
	ignore []glob.Glob
}

// NewScanner creates a scanner from scan configuration. Unparsable ignore
// globs are dropped with a warning.
func NewScanner(cfg *config.ScanConfig, logger *logging.Logger) *Scanner {
	s := &Scanner{cfg: cfg, logger: logger}

	for _, pattern := range cfg.Ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			logger.Warn("Ignoring unparsable ignore pattern", map[string]interface{}{
				"pattern": pattern,
				"error":   err.Error(),
			})
			continue
		}
		s.ignore = append(s.ignore, g)
	}

	return s
}

// Scan returns every candidate source file under projectRoot in stable
// (sorted by path) order. Source files are looked for under src/ when it
// exists, otherwise under the root itself. A project with no source files
// yields an empty slice, not an error; only a missing root is fatal.
func (s *Scanner) Scan(projectRoot string) ([]SourceFile, error) {
	info, err := os.Stat(projectRoot)
	if err != nil || !info.IsDir() {
		return nil, rasrerrors.New(rasrerrors.ProjectNotFound,
			"project root is not a directory: "+projectRoot, err)
	}

	scanRoot := projectRoot
	if srcInfo, err := os.Stat(filepath.Join(projectRoot, "src")); err == nil && srcInfo.IsDir() {
		scanRoot = filepath.Join(projectRoot, "src")
	}

	var relPaths []string
	walkErr := filepath.WalkDir(scanRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directory: skip it, keep walking
			s.logger.Warn("Skipping unreadable path", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if d.Name() == "target" {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".rs") {
			return nil
		}

		rel := paths.RelativeTo(path, projectRoot)
		if s.excluded(rel) {
			return nil
		}
		relPaths = append(relPaths, rel)
		return nil
	})
	if walkErr != nil {
		return nil, rasrerrors.New(rasrerrors.InternalError, "source walk failed", walkErr)
	}

	sort.Strings(relPaths)

	var files []SourceFile
	for _, rel := range relPaths {
		full := paths.JoinRepoPath(projectRoot, rel)

		if s.cfg.MaxFileSizeBytes > 0 {
			if info, err := os.Stat(full); err == nil && info.Size() > int64(s.cfg.MaxFileSizeBytes) {
				s.logger.Debug("Skipping oversized file", map[string]interface{}{
					"path": rel,
					"size": info.Size(),
				})
				continue
			}
		}

		data, err := os.ReadFile(full)
		if err != nil {
			s.logger.Warn("Skipping unreadable file", map[string]interface{}{
				"path":  rel,
				"error": err.Error(),
			})
			continue
		}

		files = append(files, SourceFile{
			Path: rel,
			Text: decodeLossy(data),
		})
	}

	return files, nil
}

// excluded applies the test/bench/example rules and the configured ignore globs
func (s *Scanner) excluded(relPath string) bool {
	if !s.cfg.IncludeTests && isTestPath(relPath) {
		return true
	}
	for _, g := range s.ignore {
		if g.Match(relPath) {
			return true
		}
	}
	return false
}

// isTestPath reports whether a project-relative path points at test, bench,
// example, fuzz or stress code.
func isTestPath(relPath string) bool {
	for _, pattern := range excludePathPatterns {
		if strings.Contains(relPath, pattern) {
			return true
		}
		if strings.HasSuffix(relPath, strings.Trim(pattern, "/")) {
			return true
		}
	}
	return false
}

// decodeLossy converts raw bytes to a string, substituting invalid UTF-8
// sequences instead of failing.
func decodeLossy(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}
