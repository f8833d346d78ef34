package config

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-chartspec/pkg/schema"
	"github.com/goliatone/go-chartspec/pkg/testsupport"
	"github.com/goliatone/go-chartspec/pkg/validators"
)

func TestLoad_StorePolicyDocument(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoader(WithLogger(zap.New(core).Sugar()))

	cfg, err := l.Load(context.Background(), schema.SourceFromFile(filepath.Join("testdata", "studio.yaml")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Policy != validators.ExtensionStore {
		t.Fatalf("expected store policy, got %s", cfg.Policy)
	}

	wantValues := map[string]any{
		"ambient":            0.8,
		"diffuse":            0.8,
		"facenormalsepsilon": 1e-6,
		"fresnel":            0.2,
		"roughness":          0.5,
		"specular":           0.05,
	}
	if diff := cmp.Diff(wantValues, cfg.Lighting.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	wantExt := map[string]any{"preset": "studio", "x-author": "design"}
	if diff := cmp.Diff(wantExt, cfg.Lighting.Extensions()); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}

	if logs.FilterMessage("stored extension inputs").Len() != 1 {
		t.Fatalf("expected stored extension log entry, got %v", logs.All())
	}
	if logs.FilterMessage("config loaded").Len() != 1 {
		t.Fatalf("expected config loaded log entry")
	}
}

func TestLoad_JSONFromFS(t *testing.T) {
	fsys := fstest.MapFS{"strict.json": {Data: mustRead(t, "strict.json")}}
	cfg, err := NewLoader(WithFileSystem(fsys)).Load(context.Background(), schema.SourceFromFS("strict.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Policy != validators.ExtensionReject {
		t.Fatalf("expected default reject policy, got %s", cfg.Policy)
	}
	if got, ok := cfg.Lighting.VertexNormalsEpsilon(); !ok || got != 1e-12 {
		t.Fatalf("unexpected vertex normals epsilon %v (ok=%v)", got, ok)
	}
}

func TestLoad_OutOfRangeFailsWholeDocument(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), schema.SourceFromFile(filepath.Join("testdata", "out_of_range.yaml")))
	if !errors.Is(err, validators.ErrOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if !strings.Contains(err.Error(), "mesh3d.lighting.fresnel") {
		t.Fatalf("expected fresnel to be reported first, got %v", err)
	}
}

func TestLoad_UnknownKeyFollowsPolicy(t *testing.T) {
	src := schema.SourceFromFile(filepath.Join("testdata", "unknown_key.yaml"))

	if _, err := NewLoader().Load(context.Background(), src); !errors.Is(err, validators.ErrUnknownProperty) {
		t.Fatalf("expected unknown property, got %v", err)
	}

	core, logs := observer.New(zapcore.DebugLevel)
	cfg, err := NewLoader(
		WithPolicyOverride(validators.ExtensionSkip),
		WithLogger(zap.New(core).Sugar()),
	).Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load with skip: %v", err)
	}
	if got, _ := cfg.Lighting.Ambient(); got != 0.5 {
		t.Fatalf("expected ambient 0.5, got %v", got)
	}
	skipped := logs.FilterMessage("skipped unrecognized inputs").All()
	if len(skipped) != 1 {
		t.Fatalf("expected one skip log entry, got %d", len(skipped))
	}
	if diff := cmp.Diff([]any{"shininess"}, skipped[0].ContextMap()["keys"]); diff != "" {
		t.Fatalf("skipped keys mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_RejectsUnknownSections(t *testing.T) {
	doc := testsupport.Document(t, "cfg.yaml", "mesh3d:\n  lightposition:\n    x: 1\n")
	if _, err := Decode(doc); err == nil {
		t.Fatalf("expected unknown mesh3d section to fail")
	}

	doc = testsupport.Document(t, "cfg.yaml", "theme: dark\n")
	if _, err := Decode(doc); err == nil {
		t.Fatalf("expected unknown top-level key to fail")
	}

	doc = testsupport.Document(t, "cfg.yaml", "- not\n- a map\n")
	if _, err := Decode(doc); err == nil {
		t.Fatalf("expected non-mapping document to fail")
	}
}

func TestParse_InvalidPolicy(t *testing.T) {
	doc := testsupport.Document(t, "cfg.yaml", "extensions: lenient\n")
	if _, err := NewLoader().Parse(doc); err == nil || !strings.Contains(err.Error(), "unknown extension policy") {
		t.Fatalf("expected policy error, got %v", err)
	}
}

func TestParse_EmptyLightingBlock(t *testing.T) {
	doc := testsupport.Document(t, "cfg.yaml", "extensions: skip\n")
	cfg, err := NewLoader().Parse(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cfg.Lighting.IsEmpty() {
		t.Fatalf("expected empty lighting, got %s", cfg.Lighting)
	}
}

func mustRead(t *testing.T, name string) []byte {
	t.Helper()
	return testsupport.LoadDocument(t, filepath.Join("testdata", name)).Raw()
}

func TestDecode_FormatSpecificParsing(t *testing.T) {
	file, err := Decode(testsupport.Document(t, "cfg.json", `{"mesh3d": {"lighting": {"fresnel": 4}}}`))
	if err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"fresnel": 4.0}, file.Mesh3D.Lighting); diff != "" {
		t.Fatalf("lighting mismatch (-want +got):\n%s", diff)
	}

	_, err = Decode(testsupport.Document(t, "cfg.json", `{"mesh3d": {}} {"extensions": "skip"}`))
	if err == nil || !strings.Contains(err.Error(), "parse json") {
		t.Fatalf("expected trailing json data to fail, got %v", err)
	}
}

func TestLoad_MaxSize(t *testing.T) {
	fsys := fstest.MapFS{"big.yaml": {Data: []byte("mesh3d:\n  lighting:\n    ambient: 0.123456789\n")}}
	_, err := NewLoader(WithFileSystem(fsys), WithMaxSize(16)).Load(context.Background(), schema.SourceFromFS("big.yaml"))
	if err == nil || !strings.Contains(err.Error(), "exceeds 16 bytes") {
		t.Fatalf("expected size limit error, got %v", err)
	}
}

func TestParse_CaseCollidingKeys(t *testing.T) {
	doc := testsupport.Document(t, "cfg.yaml", "mesh3d:\n  lighting:\n    Ambient: 0.1\n    AMBIENT: 0.9\n")
	if _, err := NewLoader().Parse(doc); !errors.Is(err, validators.ErrDuplicateProperty) {
		t.Fatalf("expected duplicate property error, got %v", err)
	}
}
