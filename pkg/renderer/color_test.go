package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected uint8
	}{
		{"zero", 0, 0},
		{"quarter becomes half after gamma", 0.25, 128},
		{"one", 1, 255},
		{"overbright clamps", 4, 255},
		{"negative", -0.5, 0},
		{"NaN", math.NaN(), 0},
		{"positive infinity", math.Inf(1), 0},
		{"negative infinity", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quantize(tt.input); got != tt.expected {
				t.Errorf("quantize(%f) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestToRGBA(t *testing.T) {
	got := ToRGBA(core.NewVec3(1, 0.25, 0))
	expected := color.RGBA{R: 255, G: 128, B: 0, A: 255}
	if got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}
