// Package water provides the translucent water plane drawn over the terrain.
package water

// Color is the water tint, alpha included.
var Color = [4]float32{0.1, 0.2, 0.8, 0.5}

// Plane holds water plane geometry ready for GPU upload.
type Plane struct {
	Vertices []float32 // x,y,z for BL, BR, TR, TL, drawn as a triangle fan
	Color    [4]float32
}

// BuildPlane creates a size×size quad at height level starting at the origin.
// Terrain heights already subtract the water level, so the editor builds
// the plane at 0.
func BuildPlane(size, level float32) *Plane {
	return &Plane{
		Vertices: []float32{
			0, level, 0,
			size, level, 0,
			size, level, size,
			0, level, size,
		},
		Color: Color,
	}
}
