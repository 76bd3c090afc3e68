package scanner

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"rasr/internal/config"
	"rasr/internal/logging"
)

func newTestScanner(cfg *config.ScanConfig) *Scanner {
	logger := logging.NewLogger(logging.Config{Level: logging.ErrorLevel})
	return NewScanner(cfg, logger)
}

func writeFile(t *testing.T, root string, rel string, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func scannedPaths(files []SourceFile) []string {
	var out []string
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func TestScanPrefersSrcDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/lib.rs", "pub struct A;")
	writeFile(t, root, "src/domain/user.rs", "pub struct User;")
	writeFile(t, root, "build.rs", "fn main() {}") // outside src, not scanned

	files, err := newTestScanner(&config.DefaultConfig().Scan).Scan(root)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"src/domain/user.rs", "src/lib.rs"}
	if !reflect.DeepEqual(scannedPaths(files), want) {
		t.Errorf("paths = %v, want %v (sorted)", scannedPaths(files), want)
	}
}

func TestScanWithoutSrcFallsBackToRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.rs", "fn main() {}")

	files, err := newTestScanner(&config.DefaultConfig().Scan).Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Path != "main.rs" {
		t.Errorf("files = %v", scannedPaths(files))
	}
}

func TestScanExcludesTestPaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/lib.rs", "pub struct A;")
	writeFile(t, root, "src/tests/integration.rs", "fn t() {}")
	writeFile(t, root, "src/parser_test.rs", "fn t() {}")
	writeFile(t, root, "src/benches/perf.rs", "fn b() {}")
	writeFile(t, root, "src/examples/demo.rs", "fn d() {}")
	writeFile(t, root, "src/fuzz/fuzzer.rs", "fn f() {}")

	files, err := newTestScanner(&config.DefaultConfig().Scan).Scan(root)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 1 || files[0].Path != "src/lib.rs" {
		t.Errorf("only src/lib.rs should survive, got %v", scannedPaths(files))
	}
}

func TestScanIncludeTests(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/lib.rs", "pub struct A;")
	writeFile(t, root, "src/tests/integration.rs", "fn t() {}")

	cfg := config.DefaultConfig().Scan
	cfg.IncludeTests = true

	files, err := newTestScanner(&cfg).Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files with IncludeTests, got %v", scannedPaths(files))
	}
}

func TestScanIgnoreGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/lib.rs", "pub struct A;")
	writeFile(t, root, "src/generated/bindings.rs", "pub struct B;")

	cfg := config.DefaultConfig().Scan
	cfg.Ignore = append(cfg.Ignore, "src/generated/**")

	files, err := newTestScanner(&cfg).Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Path != "src/lib.rs" {
		t.Errorf("ignore glob not applied, got %v", scannedPaths(files))
	}
}

func TestScanSkipsTargetDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "lib.rs", "pub struct A;")
	writeFile(t, root, "target/debug/build.rs", "fn main() {}")

	files, err := newTestScanner(&config.DefaultConfig().Scan).Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Path != "lib.rs" {
		t.Errorf("target/ must be skipped, got %v", scannedPaths(files))
	}
}

func TestScanLossyDecode(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "lib.rs", "pub struct A; // caf\xff\xfe")

	files, err := newTestScanner(&config.DefaultConfig().Scan).Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("invalid UTF-8 must not drop the file, got %d files", len(files))
	}
	for _, r := range files[0].Text {
		if r == 0xFFFD {
			return // replacement rune present
		}
	}
	t.Error("invalid bytes should be substituted with the replacement rune")
}

func TestScanEmptyProject(t *testing.T) {
	root := t.TempDir()

	files, err := newTestScanner(&config.DefaultConfig().Scan).Scan(root)
	if err != nil {
		t.Fatalf("empty project is not an error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", scannedPaths(files))
	}
}

func TestScanMissingRootIsFatal(t *testing.T) {
	if _, err := newTestScanner(&config.DefaultConfig().Scan).Scan("/nonexistent/project"); err == nil {
		t.Error("missing project root must be an error")
	}
}

func TestScanSkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "lib.rs", "pub struct A;")
	writeFile(t, root, "big.rs", string(make([]byte, 128)))

	cfg := config.DefaultConfig().Scan
	cfg.MaxFileSizeBytes = 64

	files, err := newTestScanner(&cfg).Scan(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Path != "lib.rs" {
		t.Errorf("oversized file should be skipped, got %v", scannedPaths(files))
	}
}
