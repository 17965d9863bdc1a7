// Package terrain turns the relief raster into a renderable height field.
package terrain

import "github.com/Faultbox/relief-editor/internal/relief"

const (
	// GridSize is the number of vertices along each axis.
	GridSize = relief.Size
	// CellSize is the world distance between neighbouring vertices.
	CellSize = 5

	// VertexStride is the number of float32 per interleaved vertex.
	VertexStride = 8
)

// Vertex is one grid point of the terrain surface.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// Mesh is the GridSize×GridSize vertex grid. Vertex (i, j) lives at index i+GridSize*j.
type Mesh struct {
	Vertices []Vertex
	indices  []uint32
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}
