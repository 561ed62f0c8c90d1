package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewTexturedScene creates an image-mapped sphere on a checkered ground, lit by the sky
// and a small rectangular light. Without a texture path the sphere uses a checker.
func NewTexturedScene(opts Options) (*Scene, error) {
	config := geometry.DefaultCameraConfig()
	config.Aperture = 0
	config.MaxDepth = 50

	s := NewScene(config, SamplingConfig{Width: 800, SamplesPerPixel: 50}, SkyBackground)

	var surface material.Texture
	if opts.TexturePath != "" {
		texture, err := loaders.LoadImageTexture(opts.TexturePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load texture: %w", err)
		}
		if opts.Logger != nil {
			opts.Logger.Printf("Loaded texture %s (%dx%d)\n", opts.TexturePath, texture.Width, texture.Height)
		}
		surface = texture
	} else {
		surface = material.NewCheckerTexture(core.NewVec3(0.8, 0.1, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	}

	ground := material.NewTexturedLambertian(
		material.NewCheckerTexture(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)),
	)

	s.AddObjects([]geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, material.NewTexturedLambertian(surface)),
	})

	s.AddLight(geometry.NewXYRect(3, 5, 1, 3, -2, material.NewDiffuseLight(core.NewVec3(4, 4, 4))))

	return s, nil
}
