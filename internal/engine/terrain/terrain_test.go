package terrain

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/relief-editor/internal/relief"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestNewMeshLayout(t *testing.T) {
	m := NewMesh()
	if len(m.Vertices) != GridSize*GridSize {
		t.Fatalf("vertex count %d", len(m.Vertices))
	}
	if got, want := len(m.Indices()), 160*160*6; got != want {
		t.Errorf("index count %d, want %d", got, want)
	}

	v := m.Vertices[index(3, 7)]
	if v.Position != [3]float32{15, 0, 35} {
		t.Errorf("position %v", v.Position)
	}
	if v.TexCoord != [2]float32{3, 7} {
		t.Errorf("texcoord %v", v.TexCoord)
	}
	if v.Normal != [3]float32{0, 1, 0} {
		t.Errorf("normal %v", v.Normal)
	}
}

func TestIndicesFaceUp(t *testing.T) {
	m := NewMesh()
	idx := m.Indices()
	for k := 0; k < len(idx); k += 3 {
		a := m.Vertices[idx[k]].Position
		b := m.Vertices[idx[k+1]].Position
		c := m.Vertices[idx[k+2]].Position
		e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		ny := e1[2]*e2[0] - e1[0]*e2[2]
		if ny <= 0 {
			t.Fatalf("triangle %d faces down (ny=%v)", k/3, ny)
		}
	}

	want := []uint32{0, 161, 162, 162, 1, 0}
	for k, w := range want {
		if idx[k] != w {
			t.Errorf("index %d = %d, want %d", k, idx[k], w)
		}
	}
}

func TestUpdateHeights(t *testing.T) {
	r := relief.New()
	r.Set(0, 0, 255)
	r.Set(10, 20, 0)
	r.Set(5, 5, 155)

	s := NewSynchronizer(1, 30, 30)
	s.Update(r)
	m := s.Mesh()

	tests := []struct {
		i, j int
		want float32
	}{
		{0, 0, -30},
		{10, 20, 0.25*255 - 30},
		{5, 5, 25 - 30},
	}
	for _, tt := range tests {
		if got := m.Height(tt.i, tt.j); !approx(got, tt.want) {
			t.Errorf("height(%d,%d) = %v, want %v", tt.i, tt.j, got, tt.want)
		}
	}

	s.Scale = 2
	s.Update(r)
	if got := m.Height(5, 5); !approx(got, 50-30) {
		t.Errorf("scaled height = %v, want 20", got)
	}

	s.Update(nil)
	for k, v := range m.Vertices {
		if v.Position[1] != 0 {
			t.Fatalf("vertex %d not flattened: %v", k, v.Position[1])
		}
	}
}

func TestNormalCadence(t *testing.T) {
	r := relief.New()
	for j := range GridSize {
		for i := range GridSize {
			r.Set(i, j, uint8(255-i))
		}
	}

	s := NewSynchronizer(1, 0, 30)
	up := [3]float32{0, 1, 0}
	for frame := 1; frame < 30; frame++ {
		if s.Update(r) {
			t.Fatalf("normals recomputed on frame %d", frame)
		}
	}
	if s.Mesh().Vertices[index(80, 80)].Normal != up {
		t.Fatal("interior normal changed before frame 30")
	}

	if !s.Update(r) {
		t.Fatal("normals not recomputed on frame 30")
	}
	m := s.Mesh()

	// heights rise 0.25 per column, so x1-x2 = 0.5 and the normal is normalize(0.5, 5, 0)
	n := m.Vertices[index(80, 80)].Normal
	l := float32(math.Sqrt(0.25 + 25))
	if !approx(n[0], 0.5/l) || !approx(n[1], 5/l) || !approx(n[2], 0) {
		t.Errorf("interior normal %v", n)
	}

	for _, p := range [][2]int{{0, 0}, {0, 80}, {160, 80}, {80, 0}, {80, 160}, {160, 160}} {
		if got := m.Vertices[index(p[0], p[1])].Normal; got != up {
			t.Errorf("border normal at %v = %v", p, got)
		}
	}

	for frame := 1; frame < 30; frame++ {
		if s.Update(r) {
			t.Fatalf("second cycle recomputed on frame %d", frame)
		}
	}
	if !s.Update(r) {
		t.Error("second cycle missed frame 30")
	}
}

func TestInterleave(t *testing.T) {
	m := NewMesh()
	m.setHeight(2, 1, 7)
	m.Vertices[index(2, 1)].Normal = [3]float32{0.1, 0.2, 0.3}

	buf := m.Interleave(nil)
	if len(buf) != GridSize*GridSize*VertexStride {
		t.Fatalf("len %d", len(buf))
	}
	o := index(2, 1) * VertexStride
	want := []float32{10, 7, 5, 2, 1, 0.1, 0.2, 0.3}
	for k, w := range want {
		if buf[o+k] != w {
			t.Errorf("float %d = %v, want %v", k, buf[o+k], w)
		}
	}

	again := m.Interleave(buf)
	if &again[0] != &buf[0] {
		t.Error("Interleave reallocated a large enough buffer")
	}
}

func TestBoundsAndHeightAt(t *testing.T) {
	m := NewMesh()
	m.setHeight(0, 0, -4)
	m.setHeight(1, 0, 4)
	m.setHeight(160, 160, 12)

	b := m.Bounds()
	if b.Min != [3]float32{0, -4, 0} || b.Max != [3]float32{800, 12, 800} {
		t.Errorf("bounds %+v", b)
	}

	if got := m.HeightAt(2.5, 0); !approx(got, 0) {
		t.Errorf("HeightAt midpoint = %v, want 0", got)
	}
	if got := m.HeightAt(-100, -100); got != -4 {
		t.Errorf("HeightAt clamped = %v, want -4", got)
	}
	if got := m.HeightAt(1000, 1000); got != 12 {
		t.Errorf("HeightAt far corner = %v, want 12", got)
	}
}

func TestExportSTL(t *testing.T) {
	m := NewMesh()
	m.setHeight(1, 1, 10)

	tris := m.Triangles()
	if len(tris) != len(m.Indices())/3 {
		t.Fatalf("triangle count %d", len(tris))
	}
	if tris[0][0].Z != 0 || tris[0][1].Y != -5 {
		t.Errorf("first triangle not converted to Z-up: %v", *tris[0])
	}

	path := filepath.Join(t.TempDir(), "relief.stl")
	if err := m.ExportSTL(path); err != nil {
		t.Fatalf("ExportSTL: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	// binary STL: 80 byte header, count, 50 bytes per triangle
	if size := info.Size(); size <= 84 || (size-84)%50 != 0 {
		t.Errorf("unexpected STL size %d", size)
	}
}
