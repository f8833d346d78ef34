package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chartspec/pkg/traces/mesh3d"
	"github.com/goliatone/go-chartspec/pkg/validators"
)

type stubDriver struct {
	inputs     []string
	confirm    []bool
	inputErr   error
	messages   []string
	helps      []string
	inputPos   int
	confirmPos int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	s.messages = append(s.messages, cfg.Message)
	s.helps = append(s.helps, cfg.Help)
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func TestCollect_ParsesAnswersInDeclarationOrder(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{"0.8", "", "", "5", " 0.2 ", "1", ""},
		confirm: []bool{true},
	}

	values, err := Collect(context.Background(), driver, mesh3d.LightingSchema)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := map[string]any{
		"ambient":   0.8,
		"fresnel":   5.0,
		"roughness": 0.2,
		"specular":  1.0,
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	if got := driver.messages[0]; got != "mesh3d.lighting.ambient (An int or float in the interval [0, 1])" {
		t.Fatalf("unexpected first message %q", got)
	}
	if !strings.Contains(driver.helps[3], "viewing angle") {
		t.Fatalf("expected fresnel description as help, got %q", driver.helps[3])
	}

	if _, err := mesh3d.NewLightingFromMap(values); err != nil {
		t.Fatalf("collected values should build a container: %v", err)
	}
}

func TestCollect_AllBlankSkipsConfirm(t *testing.T) {
	driver := &stubDriver{inputs: make([]string, len(mesh3d.LightingSchema.Attributes))}

	values, err := Collect(context.Background(), driver, mesh3d.LightingSchema)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(values) != 0 || driver.confirmPos != 0 {
		t.Fatalf("expected empty values without confirmation, got %v", values)
	}
}

func TestCollect_Discarded(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{"1", "", "", "", "", "", ""},
		confirm: []bool{false},
	}
	if _, err := Collect(context.Background(), driver, mesh3d.LightingSchema); !errors.Is(err, ErrDiscarded) {
		t.Fatalf("expected ErrDiscarded, got %v", err)
	}
}

func TestCollect_RejectsInvalidAnswer(t *testing.T) {
	driver := &stubDriver{inputs: []string{"1.5"}}

	_, err := Collect(context.Background(), driver, mesh3d.LightingSchema)
	if !errors.Is(err, validators.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}

	driver = &stubDriver{inputs: []string{"bright"}}
	_, err = Collect(context.Background(), driver, mesh3d.LightingSchema)
	if !errors.Is(err, validators.ErrWrongType) {
		t.Fatalf("expected ErrWrongType, got %v", err)
	}
}

func TestCollect_PropagatesAbort(t *testing.T) {
	driver := &stubDriver{inputErr: ErrAborted}
	if _, err := Collect(context.Background(), driver, mesh3d.LightingSchema); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestParseAnswerValidatorHook(t *testing.T) {
	v := validators.NewNumber("mesh3d.lighting.specular", 0, 2)
	if _, err := parseAnswer(v, "2.5"); err == nil {
		t.Fatalf("expected out of range answer to fail")
	}
	got, err := parseAnswer(v, "   ")
	if err != nil || got != nil {
		t.Fatalf("expected blank answer to be unset, got %v, %v", got, err)
	}
}
