package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDocumentFromPath(t *testing.T) {
	if _, err := LoadDocumentFromPath(""); err == nil {
		t.Fatalf("expected empty path to fail")
	}

	path := filepath.Join(t.TempDir(), "doc.yaml")
	if err := os.WriteFile(path, []byte("mesh3d: {}\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	doc := LoadDocument(t, path)
	if doc.Location() != path || string(doc.Raw()) != "mesh3d: {}\n" {
		t.Fatalf("unexpected document %q from %s", doc.Raw(), doc.Location())
	}
}

func TestAssertGoldenRewritesWhenRequested(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.golden")
	t.Setenv(updateEnv, "1")
	AssertGolden(t, path, []byte("fresh\n"))

	t.Setenv(updateEnv, "")
	AssertGolden(t, path, []byte("fresh\n"))
}

func TestAssertGoldenJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "value.json")
	if err := os.WriteFile(path, []byte("{\n  \"ambient\": 0.5\n}\n"), 0o600); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	AssertGoldenJSON(t, path, map[string]float64{"ambient": 0.5})
}
