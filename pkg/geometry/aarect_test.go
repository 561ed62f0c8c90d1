package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestAARect_Hit(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	tests := []struct {
		name      string
		rect      *AARect
		ray       core.Ray
		shouldHit bool
		expectedT float64
		normal    core.Vec3
		uv        core.Vec2
	}{
		{
			name:      "xy center",
			rect:      NewXYRect(-1, 1, -1, 1, 0, mat),
			ray:       core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), 10),
			shouldHit: true,
			expectedT: 5,
			normal:    core.NewVec3(0, 0, 1),
			uv:        core.NewVec2(0.5, 0.5),
		},
		{
			name:      "xz from above",
			rect:      NewXZRect(0, 2, 0, 4, 3, mat),
			ray:       core.NewRay(core.NewVec3(0.5, 10, 1), core.NewVec3(0, -1, 0), 10),
			shouldHit: true,
			expectedT: 7,
			normal:    core.NewVec3(0, 1, 0),
			uv:        core.NewVec2(0.25, 0.25),
		},
		{
			name:      "yz from behind",
			rect:      NewYZRect(0, 1, 0, 1, 2, mat),
			ray:       core.NewRay(core.NewVec3(5, 0.5, 0.5), core.NewVec3(-1, 0, 0), 10),
			shouldHit: true,
			expectedT: 3,
			normal:    core.NewVec3(1, 0, 0),
			uv:        core.NewVec2(0.5, 0.5),
		},
		{
			name:      "xy outside extent",
			rect:      NewXYRect(-1, 1, -1, 1, 0, mat),
			ray:       core.NewRay(core.NewVec3(2, 0, 5), core.NewVec3(0, 0, -1), 10),
			shouldHit: false,
		},
		{
			name:      "parallel to plane",
			rect:      NewXYRect(-1, 1, -1, 1, 0, mat),
			ray:       core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(1, 0, 0), 10),
			shouldHit: false,
		},
		{
			name:      "plane behind ray",
			rect:      NewXYRect(-1, 1, -1, 1, 0, mat),
			ray:       core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1), 10),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := tt.rect.Hit(tt.ray, 0.001, math.Inf(1), testSampler())
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if !vecNear(hit.Normal, tt.normal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.normal, hit.Normal)
			}
			if math.Abs(hit.UV.X-tt.uv.X) > 1e-9 || math.Abs(hit.UV.Y-tt.uv.Y) > 1e-9 {
				t.Errorf("Expected uv %v, got %v", tt.uv, hit.UV)
			}
			if hit.Material != mat {
				t.Error("Expected rectangle material on hit record")
			}
		})
	}
}

func TestAARect_BoundingBoxIsPadded(t *testing.T) {
	rect := NewXZRect(213, 343, 227, 332, 554, nil)
	box := rect.BoundingBox()

	if box.Min.Y >= 554 || box.Max.Y <= 554 {
		t.Errorf("Expected box padded around y=554, got %v", box)
	}
	if box.Min.X != 213 || box.Max.X != 343 || box.Min.Z != 227 || box.Max.Z != 332 {
		t.Errorf("Unexpected in-plane extent: %v", box)
	}
}

func TestAARect_PDFValue(t *testing.T) {
	// Unit square 2 units straight above the origin
	rect := NewXZRect(-0.5, 0.5, -0.5, 0.5, 2, nil)
	origin := core.NewVec3(0, 0, 0)
	sampler := testSampler()

	// Straight up: dist² = 4, cos = 1, area = 1
	if got := rect.PDFValue(origin, core.NewVec3(0, 1, 0), sampler); math.Abs(got-4) > 1e-9 {
		t.Errorf("Expected density 4, got %f", got)
	}
	// Scale of the direction must not matter
	if got := rect.PDFValue(origin, core.NewVec3(0, 3, 0), sampler); math.Abs(got-4) > 1e-9 {
		t.Errorf("Expected density 4 for unnormalized direction, got %f", got)
	}
	// Missing the rectangle has zero density
	if got := rect.PDFValue(origin, core.NewVec3(1, 0, 0), sampler); got != 0 {
		t.Errorf("Expected density 0 on miss, got %f", got)
	}
}

func TestAARect_RandomHitsRect(t *testing.T) {
	rect := NewXZRect(213, 343, 227, 332, 554, nil)
	origin := core.NewVec3(278, 100, 278)
	sampler := testSampler()

	for i := 0; i < 100; i++ {
		dir := rect.Random(origin, sampler)
		point := origin.Add(dir)
		if point.Y != 554 {
			t.Fatalf("Sample not on light plane: %v", point)
		}
		if point.X < 213 || point.X > 343 || point.Z < 227 || point.Z > 332 {
			t.Fatalf("Sample outside light extent: %v", point)
		}
		if rect.PDFValue(origin, dir, sampler) <= 0 {
			t.Fatalf("Sampled direction %v has zero density", dir)
		}
	}
}

func TestAARect_ImplementsLightShape(t *testing.T) {
	var _ LightShape = NewXYRect(0, 1, 0, 1, 0, nil)
	var _ Hittable = NewXYRect(0, 1, 0, 1, 0, nil)
}
