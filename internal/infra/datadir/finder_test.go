package datadir

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/distmap/internal/domain"
)

var testFiles = Files{Map: "map_world.svg", Codes: "codes.txt", Mapping: "mapping.json"}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", n, err)
		}
	}
}

func noExecutable() (string, error) { return "", errors.New("unknown") }

func TestFindDataDirNextToExecutable(t *testing.T) {
	tmp := t.TempDir()
	writeFiles(t, filepath.Join(tmp, DirName), testFiles.Map)

	f := NewFinder(testFiles)
	f.executable = func() (string, error) { return filepath.Join(tmp, "distmap"), nil }

	got, err := f.FindDataDir(t.TempDir())
	if err != nil {
		t.Fatalf("FindDataDir: %v", err)
	}
	want, _ := filepath.EvalSymlinks(filepath.Join(tmp, DirName))
	if gotResolved, _ := filepath.EvalSymlinks(got); gotResolved != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestFindDataDirSearchesUpward(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "project")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFiles(t, filepath.Join(root, DirName), testFiles.Map)

	f := NewFinder(testFiles)
	f.executable = noExecutable

	got, err := f.FindDataDir(nested)
	if err != nil {
		t.Fatalf("FindDataDir: %v", err)
	}
	if got != filepath.Join(root, DirName) {
		t.Fatalf("expected %s, got %s", filepath.Join(root, DirName), got)
	}
}

func TestFindDataDirNotFound(t *testing.T) {
	f := NewFinder(Files{Map: "definitely-not-here-7c1e.svg"})
	f.executable = noExecutable

	_, err := f.FindDataDir(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestFindDataDirEmptyStart(t *testing.T) {
	f := NewFinder(testFiles)
	f.executable = noExecutable

	if _, err := f.FindDataDir(""); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestCheckReportsEveryMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, testFiles.Map)

	err := Check(dir, testFiles)
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	for _, name := range []string{testFiles.Codes, testFiles.Mapping} {
		if !strings.Contains(msg, name) {
			t.Errorf("expected %s in %q", name, msg)
		}
	}
	if strings.Contains(msg, testFiles.Map) {
		t.Errorf("present file reported missing: %q", msg)
	}
}

func TestCheckAllPresent(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, testFiles.Map, testFiles.Codes, testFiles.Mapping)

	if err := Check(dir, testFiles); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
