package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleObject() Object {
	lo, hi := Range(0, 5)
	return Object{
		Name:       "lighting",
		ParentPath: "mesh3d",
		Attributes: []Attribute{
			{Name: "fresnel", Field: "Fresnel", Type: ValueTypeNumber, Minimum: lo, Maximum: hi},
			{Name: "facenormalsepsilon", Field: "FaceNormalsEpsilon", Type: ValueTypeNumber},
		},
	}
}

func TestObjectPath(t *testing.T) {
	obj := sampleObject()
	if got := obj.Path(); got != "mesh3d.lighting" {
		t.Fatalf("unexpected path %q", got)
	}
	if got := obj.AttributePath("fresnel"); got != "mesh3d.lighting.fresnel" {
		t.Fatalf("unexpected attribute path %q", got)
	}

	obj.ParentPath = ""
	if got := obj.Path(); got != "lighting" {
		t.Fatalf("expected bare name without parent, got %q", got)
	}
}

func TestObjectAttributeLookup(t *testing.T) {
	obj := sampleObject()
	for _, name := range []string{"facenormalsepsilon", "faceNormalsEpsilon", "FaceNormalsEpsilon"} {
		attr, ok := obj.Attribute(name)
		if !ok || attr.Name != "facenormalsepsilon" {
			t.Fatalf("lookup %q: got %+v (ok=%v)", name, attr, ok)
		}
	}
	if _, ok := obj.Attribute("shininess"); ok {
		t.Fatalf("expected unknown attribute lookup to fail")
	}
	if _, ok := obj.Attribute("  "); ok {
		t.Fatalf("expected blank lookup to fail")
	}
}

func TestObjectNames(t *testing.T) {
	obj := sampleObject()
	if diff := cmp.Diff([]string{"fresnel", "facenormalsepsilon"}, obj.Names()); diff != "" {
		t.Fatalf("declaration order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"facenormalsepsilon", "fresnel"}, obj.SortedNames()); diff != "" {
		t.Fatalf("sorted names mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributeBounds(t *testing.T) {
	obj := sampleObject()
	lo, hi, ok := obj.Attributes[0].Bounds()
	if !ok || lo != 0 || hi != 5 {
		t.Fatalf("unexpected bounds %v %v %v", lo, hi, ok)
	}
	if _, _, ok := obj.Attributes[1].Bounds(); ok {
		t.Fatalf("expected open bounds for attribute without limits")
	}
}
