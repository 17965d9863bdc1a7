package water

import "testing"

func TestBuildPlane(t *testing.T) {
	p := BuildPlane(805, 0)
	if len(p.Vertices) != 12 {
		t.Fatalf("vertex floats %d, want 12", len(p.Vertices))
	}
	for k := 1; k < 12; k += 3 {
		if p.Vertices[k] != 0 {
			t.Errorf("vertex %d height %v, want 0", k/3, p.Vertices[k])
		}
	}
	if p.Vertices[6] != 805 || p.Vertices[8] != 805 {
		t.Errorf("far corner (%v,%v)", p.Vertices[6], p.Vertices[8])
	}
	if p.Color != [4]float32{0.1, 0.2, 0.8, 0.5} {
		t.Errorf("color %v", p.Color)
	}
}
