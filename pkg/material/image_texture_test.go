package material

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// TestImageTextureEvaluate tests basic texture sampling
func TestImageTextureEvaluate(t *testing.T) {
	// Layout:
	//   white black
	//   black white
	pixels := []core.Vec3{
		core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0), // Row 0 (top in image coords)
		core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), // Row 1 (bottom in image coords)
	}
	texture := NewImageTexture(2, 2, pixels)

	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"bottom-left", core.NewVec2(0.1, 0.1), black},
		{"bottom-right", core.NewVec2(0.9, 0.1), white},
		{"top-left", core.NewVec2(0.1, 0.9), white},
		{"top-right", core.NewVec2(0.9, 0.9), black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Evaluate(tt.uv, core.Vec3{}); got != tt.expected {
				t.Errorf("UV %v: expected %v, got %v", tt.uv, tt.expected, got)
			}
		})
	}
}

func TestImageTextureClamping(t *testing.T) {
	pixels := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(1, 1, 0),
	}
	texture := NewImageTexture(2, 2, pixels)

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"u,v exactly 1 clamp to top-right", core.NewVec2(1, 1), core.NewVec3(0, 1, 0)},
		{"u,v exactly 0 clamp to bottom-left", core.NewVec2(0, 0), core.NewVec3(0, 0, 1)},
		{"negative clamps to 0", core.NewVec2(-3, -0.5), core.NewVec3(0, 0, 1)},
		{"above 1 clamps to 1", core.NewVec2(5, 2), core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Evaluate(tt.uv, core.Vec3{}); got != tt.expected {
				t.Errorf("UV %v: expected %v, got %v", tt.uv, tt.expected, got)
			}
		})
	}
}

func TestImageTextureEmptyReturnsDebugColor(t *testing.T) {
	texture := NewImageTexture(0, 0, nil)
	if got := texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{}); got != core.NewVec3(0, 1, 1) {
		t.Errorf("Expected cyan debug color, got %v", got)
	}
}

func TestSolidColor(t *testing.T) {
	color := core.NewVec3(0.2, 0.3, 0.4)
	solid := NewSolidColor(color)
	if got := solid.Evaluate(core.NewVec2(0.7, 0.1), core.NewVec3(9, 9, 9)); got != color {
		t.Errorf("Expected %v, got %v", color, got)
	}
}

func TestCheckerTexture(t *testing.T) {
	odd := core.NewVec3(0.2, 0.3, 0.1)
	even := core.NewVec3(0.9, 0.9, 0.9)
	checker := NewCheckerTexture(odd, even)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		// sin(0.5)^3 > 0
		{"all positive sines", core.NewVec3(0.05, 0.05, 0.05), even},
		// sin(-0.5)·sin(0.5)·sin(0.5) < 0
		{"one negative sine", core.NewVec3(-0.05, 0.05, 0.05), odd},
		// two negatives cancel
		{"two negative sines", core.NewVec3(-0.05, -0.05, 0.05), even},
		// zero product is not negative
		{"on a plane", core.NewVec3(0, 0.05, 0.05), even},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Evaluate(core.Vec2{}, tt.point); got != tt.expected {
				t.Errorf("Point %v: expected %v, got %v", tt.point, tt.expected, got)
			}
		})
	}
}

func TestCheckerTextureFrom_NestsTextures(t *testing.T) {
	pixel := NewImageTexture(1, 1, []core.Vec3{core.NewVec3(0, 0, 1)})
	inner := NewCheckerTexture(core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))
	checker := NewCheckerTextureFrom(pixel, inner)

	// Odd cells defer to the image, even cells to the inner checker at the same point
	if got := checker.Evaluate(core.NewVec2(0.5, 0.5), core.NewVec3(-0.05, 0.05, 0.05)); got != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected image color in odd cell, got %v", got)
	}
	if got := checker.Evaluate(core.Vec2{}, core.NewVec3(0.05, 0.05, 0.05)); got != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected inner checker's even color, got %v", got)
	}
}
