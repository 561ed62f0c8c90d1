package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/scene"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRun_RendersScene(t *testing.T) {
	tests := []struct {
		name   string
		scene  string
		output string
	}{
		{"cornell to ppm", "cornell", "cornell.ppm"},
		{"initial to png", "initial", "initial.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.output)
			out, err := execute(t, "--scene", tt.scene, "--width", "8", "--spp", "1", "--depth", "4",
				"--workers", "2", "--tile-size", "4", "--output", path)
			if err != nil {
				t.Fatalf("Render failed: %v\n%s", err, out)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("Expected output file: %v", err)
			}
			if info.Size() == 0 {
				t.Error("Output file is empty")
			}
			if !strings.Contains(out, "Saved "+path) {
				t.Errorf("Missing summary in output: %q", out)
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"--scene", "nonexistent"}},
		{"mesh scene without mesh", []string{"--scene", "mesh"}},
		{"unsupported output", []string{"--scene", "cornell", "--width", "4", "--spp", "1"}},
		{"negative spp", []string{"--scene", "cornell", "--spp=-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			output := filepath.Join(dir, "out.bmp")
			args := append(tt.args, "--output", output)

			if _, err := execute(t, args...); err == nil {
				t.Fatal("Expected an error")
			}
			if _, err := os.Stat(output); !os.IsNotExist(err) {
				t.Error("No image should be written on failure")
			}
		})
	}
}

func TestRun_UnknownSceneIsSentinel(t *testing.T) {
	_, err := execute(t, "--scene", "nope")
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestList(t *testing.T) {
	out, err := execute(t, "--list")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, name := range scene.Names() {
		if !strings.Contains(out, name) {
			t.Errorf("Scene %q missing from list output", name)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	s, err := scene.New("cornell", scene.Options{})
	if err != nil {
		t.Fatalf("Failed to build scene: %v", err)
	}
	defaults := s.SamplingConfig

	if err := applyOverrides(s, &options{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.SamplingConfig != defaults {
		t.Errorf("Zero flags should keep scene defaults, got %+v", s.SamplingConfig)
	}

	if err := applyOverrides(s, &options{width: 50, spp: 3, depth: 2}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.SamplingConfig.Width != 50 || s.SamplingConfig.Height != 50 || s.SamplingConfig.SamplesPerPixel != 3 {
		t.Errorf("Unexpected film after overrides: %+v", s.SamplingConfig)
	}
	if s.CameraConfig.MaxDepth != 2 {
		t.Errorf("Expected depth 2, got %d", s.CameraConfig.MaxDepth)
	}

	if err := applyOverrides(s, &options{width: -1}); err == nil {
		t.Error("Expected error for negative width")
	}
}
