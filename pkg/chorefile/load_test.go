// SPDX-License-Identifier: MPL-2.0

package chorefile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadSingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := writeFile(t, dir, "chorefile", "build:\n    cargo build\n")

	files, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("files = %d, want 1", len(files))
	}
	if files[0].Path != root {
		t.Errorf("path = %q, want %q", files[0].Path, root)
	}
}

func TestLoadImportsPrecedeImporter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "common.chore", "fmt:\n    gofmt -l .\n")
	writeFile(t, dir, "extra.chore", "lint:\n    golangci-lint run\n")
	root := writeFile(t, dir, "chorefile",
		"import \"common.chore\"\nimport \"extra.chore\"\n\nbuild:\n    go build ./...\n")

	files, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var names []string
	for _, cf := range files {
		names = append(names, filepath.Base(cf.Path))
	}
	want := []string{"common.chore", "extra.chore", "chorefile"}
	if len(names) != len(want) {
		t.Fatalf("load order = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("load order = %v, want %v", names, want)
		}
	}
}

func TestLoadNestedImportsDepthFirst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "base.chore", "base:\n    true\n")
	writeFile(t, dir, "mid.chore", "import \"base.chore\"\n\nmid:\n    true\n")
	root := writeFile(t, dir, "chorefile", "import \"mid.chore\"\n\ntop:\n    true\n")

	files, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	var names []string
	for _, cf := range files {
		names = append(names, filepath.Base(cf.Path))
	}
	want := []string{"base.chore", "mid.chore", "chorefile"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("load order = %v, want %v", names, want)
		}
	}
}

func TestLoadOptionalImportAbsent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := writeFile(t, dir, "chorefile", "import? \"nope.chore\"\n\nbuild:\n    true\n")

	files, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("files = %d, want 1 (optional import contributes nothing)", len(files))
	}
}

func TestLoadRequiredImportAbsent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := writeFile(t, dir, "chorefile", "import \"nope.chore\"\n\nbuild:\n    true\n")

	_, err := Load(root)
	if err == nil {
		t.Fatal("Load() succeeded, want missing import error")
	}
	var missing *MissingImportError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingImportError", err)
	}
	if missing.Path != "nope.chore" {
		t.Errorf("missing path = %q, want %q", missing.Path, "nope.chore")
	}
	if !errors.Is(err, ErrLoad) {
		t.Errorf("error does not wrap ErrLoad: %v", err)
	}
}

func TestLoadImportCycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.chore", "import \"b.chore\"\n\na:\n    true\n")
	writeFile(t, dir, "b.chore", "import \"a.chore\"\n\nb:\n    true\n")
	root := writeFile(t, dir, "chorefile", "import \"a.chore\"\n\ntop:\n    true\n")

	_, err := Load(root)
	if err == nil {
		t.Fatal("Load() succeeded, want import cycle error")
	}
	var cycle *ImportCycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("error = %v, want *ImportCycleError", err)
	}
}

func TestLoadDiamondImportDeduplicated(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "base.chore", "base:\n    true\n")
	writeFile(t, dir, "left.chore", "import \"base.chore\"\n\nleft:\n    true\n")
	writeFile(t, dir, "right.chore", "import \"base.chore\"\n\nright:\n    true\n")
	root := writeFile(t, dir, "chorefile",
		"import \"left.chore\"\nimport \"right.chore\"\n\ntop:\n    true\n")

	files, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	seen := map[string]int{}
	for _, cf := range files {
		seen[filepath.Base(cf.Path)]++
	}
	if seen["base.chore"] != 1 {
		t.Errorf("base.chore loaded %d times, want 1", seen["base.chore"])
	}
	if len(files) != 4 {
		t.Errorf("files = %d, want 4", len(files))
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := writeFile(t, dir, DefaultFileName, "build:\n    true\n")
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	found, err := Find(nested)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if found != root {
		t.Errorf("Find() = %q, want %q", found, root)
	}
}

func TestFindNotFound(t *testing.T) {
	t.Parallel()

	_, err := Find(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Find() error = %v, want ErrNotFound", err)
	}
}
