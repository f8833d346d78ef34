package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chartspec/pkg/schema"
)

const payload = "mesh3d:\n  lighting:\n    ambient: 0.5\n"

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lighting.yaml")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := New(Options{}).Load(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	if _, err := New(Options{}).Load(context.Background(), schema.SourceFromFile(filepath.Join(dir, "missing.yaml"))); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{"cfg/lighting.yaml": {Data: []byte(payload)}}

	doc, err := New(Options{FileSystem: fsys}).Load(context.Background(), schema.SourceFromFS("cfg/lighting.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != "cfg/lighting.yaml" {
		t.Fatalf("unexpected location %q", doc.Location())
	}

	if _, err := New(Options{}).Load(context.Background(), schema.SourceFromFS("cfg/lighting.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}

func TestLoadHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	src, err := schema.SourceFromURL(server.URL + "/lighting.yaml")
	if err != nil {
		t.Fatalf("source: %v", err)
	}

	if _, err := New(Options{}).Load(context.Background(), src); err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected http to be disabled by default, got %v", err)
	}

	doc, err := New(Options{HTTPClient: server.Client()}).Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	missing, _ := schema.SourceFromURL(server.URL + "/missing.yaml")
	if _, err := New(Options{AllowHTTP: true}).Load(context.Background(), missing); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fsys := fstest.MapFS{"a.yaml": {Data: []byte(payload)}}
	if _, err := New(Options{FileSystem: fsys}).Load(ctx, schema.SourceFromFS("a.yaml")); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestLoadNilSource(t *testing.T) {
	if _, err := New(Options{}).Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
}

func TestLoadEnforcesMaxSizeForEverySource(t *testing.T) {
	big := strings.Repeat("#", 64) + "\n" + payload

	dir := t.TempDir()
	path := filepath.Join(dir, "big.yaml")
	if err := os.WriteFile(path, []byte(big), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(big))
	}))
	defer server.Close()
	remote, _ := schema.SourceFromURL(server.URL + "/big.yaml")

	l := New(Options{
		FileSystem: fstest.MapFS{"big.yaml": {Data: []byte(big)}},
		AllowHTTP:  true,
		MaxSize:    32,
	})
	for _, src := range []schema.Source{schema.SourceFromFile(path), schema.SourceFromFS("big.yaml"), remote} {
		_, err := l.Load(context.Background(), src)
		if err == nil || !strings.Contains(err.Error(), "exceeds 32 bytes") {
			t.Fatalf("%s: expected size error, got %v", src.Kind(), err)
		}
	}

	if _, err := New(Options{FileSystem: fstest.MapFS{"big.yaml": {Data: []byte(big)}}}).Load(context.Background(), schema.SourceFromFS("big.yaml")); err != nil {
		t.Fatalf("default limit should admit small documents: %v", err)
	}
}

func TestDecodeDocument(t *testing.T) {
	cases := []struct {
		name     string
		location string
		raw      string
		want     map[string]any
		wantErr  string
	}{
		{
			name:     "yaml",
			location: "cfg.yaml",
			raw:      payload,
			want:     map[string]any{"mesh3d": map[string]any{"lighting": map[string]any{"ambient": 0.5}}},
		},
		{
			name:     "json by extension",
			location: "cfg.json",
			raw:      `{"extensions": "skip", "mesh3d": {"lighting": {"specular": 2}}}`,
			want:     map[string]any{"extensions": "skip", "mesh3d": map[string]any{"lighting": map[string]any{"specular": 2.0}}},
		},
		{
			name:     "json sniffed",
			location: "cfg",
			raw:      ` {"extensions": "store"}`,
			want:     map[string]any{"extensions": "store"},
		},
		{name: "yaml sequence", location: "cfg.yaml", raw: "- a\n- b\n", wantErr: "expected a mapping"},
		{name: "yaml scalar", location: "cfg.yaml", raw: "just text\n", wantErr: "expected a mapping"},
		{name: "json array", location: "cfg.json", raw: `[1, 2]`, wantErr: "parse json"},
		{name: "json null", location: "cfg.json", raw: `null`, wantErr: "top level must be a mapping"},
		{name: "json trailing", location: "cfg.json", raw: `{} {}`, wantErr: "unexpected data"},
		{name: "yaml syntax", location: "cfg.yaml", raw: "a: [\n", wantErr: "parse yaml"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := schema.NewDocument(schema.SourceFromFS(tc.location), []byte(tc.raw))
			if err != nil {
				t.Fatalf("new document: %v", err)
			}
			got, err := DecodeDocument(doc)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadMap(t *testing.T) {
	fsys := fstest.MapFS{"cfg/lighting.yaml": {Data: []byte(payload)}}
	doc, values, err := New(Options{FileSystem: fsys}).LoadMap(context.Background(), schema.SourceFromFS("cfg/lighting.yaml"))
	if err != nil {
		t.Fatalf("load map: %v", err)
	}
	if doc.Format() != schema.FormatYAML {
		t.Fatalf("unexpected format %s", doc.Format())
	}
	if _, ok := values["mesh3d"]; !ok {
		t.Fatalf("expected mesh3d section, got %v", values)
	}
}
