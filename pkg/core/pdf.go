package core

import "math"

// PDF is a probability density over directions used for importance sampling.
// Value returns the solid-angle density of direction; Generate draws a direction from it.
type PDF interface {
	Value(direction Vec3) float64
	Generate(sampler Sampler) Vec3
}

// CosinePDF samples the hemisphere around a normal proportionally to cos(θ)
type CosinePDF struct {
	uvw ONB
}

// NewCosinePDF creates a cosine-weighted PDF about the normal w
func NewCosinePDF(w Vec3) *CosinePDF {
	return &CosinePDF{uvw: NewONBFromW(w)}
}

// Value returns max(0, cos θ)/π
func (p *CosinePDF) Value(direction Vec3) float64 {
	cosine := direction.Normalize().Dot(p.uvw.W)
	if cosine <= 0 {
		return 0
	}
	return cosine / math.Pi
}

// Generate returns a cosine-weighted direction in world space
func (p *CosinePDF) Generate(sampler Sampler) Vec3 {
	return p.uvw.Local(RandomCosineDirection(sampler.Get2D()))
}

// MixturePDF combines two PDFs with equal weight
type MixturePDF struct {
	P [2]PDF
}

// NewMixturePDF creates an equal-weight mixture of p0 and p1
func NewMixturePDF(p0, p1 PDF) *MixturePDF {
	return &MixturePDF{P: [2]PDF{p0, p1}}
}

// Value returns the mean of both densities
func (m *MixturePDF) Value(direction Vec3) float64 {
	return 0.5*m.P[0].Value(direction) + 0.5*m.P[1].Value(direction)
}

// Generate flips a fair coin to pick which PDF to sample
func (m *MixturePDF) Generate(sampler Sampler) Vec3 {
	if sampler.Get1D() < 0.5 {
		return m.P[0].Generate(sampler)
	}
	return m.P[1].Generate(sampler)
}
