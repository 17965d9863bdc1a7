package terrain

import "github.com/Faultbox/relief-editor/internal/relief"

// Synchronizer copies raster values into mesh heights every frame.
type Synchronizer struct {
	Scale          float32
	WaterLevel     float32
	NormalInterval int

	mesh  *Mesh
	frame int
}

// NewSynchronizer returns a synchronizer over a fresh flat mesh.
func NewSynchronizer(scale, water float32, normalInterval int) *Synchronizer {
	return &Synchronizer{
		Scale:          scale,
		WaterLevel:     water,
		NormalInterval: normalInterval,
		mesh:           NewMesh(),
	}
}

// Mesh returns the synchronized mesh.
func (s *Synchronizer) Mesh() *Mesh {
	return s.mesh
}

// HeightOf converts a raster value to a world height. Darker is higher.
func (s *Synchronizer) HeightOf(v uint8) float32 {
	return 0.25*s.Scale*float32(255-int(v)) - s.WaterLevel
}

// Update refreshes every height from r, or flattens to 0 when r is nil.
// Interior normals are recomputed on every NormalInterval-th call, and
// Update reports whether that happened.
func (s *Synchronizer) Update(r *relief.Raster) bool {
	for j := range GridSize {
		for i := range GridSize {
			var h float32
			if r != nil {
				h = s.HeightOf(r.Value(i, j))
			}
			s.mesh.setHeight(i, j, h)
		}
	}

	s.frame++
	if s.NormalInterval <= 0 || s.frame < s.NormalInterval {
		return false
	}
	s.mesh.recomputeNormals()
	s.frame = 0
	return true
}
