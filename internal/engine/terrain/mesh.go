package terrain

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// NewMesh builds a flat grid at height 0 with upward normals.
func NewMesh() *Mesh {
	vertices := make([]Vertex, GridSize*GridSize)
	for j := range GridSize {
		for i := range GridSize {
			vertices[index(i, j)] = Vertex{
				Position: [3]float32{float32(CellSize * i), 0, float32(CellSize * j)},
				TexCoord: [2]float32{float32(i), float32(j)},
				Normal:   [3]float32{0, 1, 0},
			}
		}
	}
	return &Mesh{Vertices: vertices, indices: buildIndices()}
}

func index(i, j int) int {
	return i + GridSize*j
}

// buildIndices emits two triangles per cell, counter-clockwise seen from +Y.
func buildIndices() []uint32 {
	cells := GridSize - 1
	indices := make([]uint32, 0, cells*cells*6)
	for i := range cells {
		for j := range cells {
			a := uint32(index(i, j))
			b := uint32(index(i, j+1))
			c := uint32(index(i+1, j+1))
			d := uint32(index(i+1, j))
			indices = append(indices, a, b, c, c, d, a)
		}
	}
	return indices
}

// Indices returns the fixed triangle list.
func (m *Mesh) Indices() []uint32 {
	return m.indices
}

// Height returns the height of vertex (i, j).
func (m *Mesh) Height(i, j int) float32 {
	return m.Vertices[index(i, j)].Position[1]
}

func (m *Mesh) setHeight(i, j int, h float32) {
	m.Vertices[index(i, j)].Position[1] = h
}

// Interleave flattens vertices into position, texcoord, normal order,
// reusing dst when it is large enough.
func (m *Mesh) Interleave(dst []float32) []float32 {
	n := len(m.Vertices) * VertexStride
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	for k, v := range m.Vertices {
		o := k * VertexStride
		copy(dst[o:o+3], v.Position[:])
		copy(dst[o+3:o+5], v.TexCoord[:])
		copy(dst[o+5:o+8], v.Normal[:])
	}
	return dst
}

// Bounds returns the axis-aligned box around all vertices.
func (m *Mesh) Bounds() Bounds {
	b := Bounds{
		Min: [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
	for _, v := range m.Vertices {
		for k := range 3 {
			b.Min[k] = min(b.Min[k], v.Position[k])
			b.Max[k] = max(b.Max[k], v.Position[k])
		}
	}
	return b
}

// recomputeNormals sets interior normals from central differences.
// Border vertices keep whatever normal they had.
func (m *Mesh) recomputeNormals() {
	for i := 1; i < GridSize-1; i++ {
		for j := 1; j < GridSize-1; j++ {
			h := m.Height(i, j)
			x1 := h - m.Height(i-1, j)
			x2 := h - m.Height(i+1, j)
			y1 := h - m.Height(i, j-1)
			y2 := h - m.Height(i, j+1)
			m.Vertices[index(i, j)].Normal = normalize([3]float32{x1 - x2, CellSize, y1 - y2})
		}
	}
}

// Triangles returns the surface as a triangle soup in a Z-up frame,
// keeping the winding of the index list.
func (m *Mesh) Triangles() []*sdf.Triangle3 {
	idx := m.indices
	tris := make([]*sdf.Triangle3, 0, len(idx)/3)
	for k := 0; k+2 < len(idx); k += 3 {
		tris = append(tris, &sdf.Triangle3{
			m.zUp(idx[k]),
			m.zUp(idx[k+1]),
			m.zUp(idx[k+2]),
		})
	}
	return tris
}

func (m *Mesh) zUp(i uint32) v3.Vec {
	p := m.Vertices[i].Position
	return v3.Vec{X: float64(p[0]), Y: float64(-p[2]), Z: float64(p[1])}
}

// ExportSTL writes the current surface to path as binary STL.
func (m *Mesh) ExportSTL(path string) error {
	if err := render.SaveSTL(path, m.Triangles()); err != nil {
		return fmt.Errorf("export stl: %w", err)
	}
	return nil
}

func normalize(v [3]float32) [3]float32 {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l < 0.0001 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
