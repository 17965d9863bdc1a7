package terrain

// HeightAt returns the bilinearly interpolated surface height at a world
// position. Positions outside the grid are clamped to the nearest edge.
func (m *Mesh) HeightAt(worldX, worldZ float32) float32 {
	fx := clampf(worldX/CellSize, 0, GridSize-1)
	fz := clampf(worldZ/CellSize, 0, GridSize-1)

	i := min(int(fx), GridSize-2)
	j := min(int(fz), GridSize-2)
	tx := fx - float32(i)
	tz := fz - float32(j)

	near := m.Height(i, j)*(1-tx) + m.Height(i+1, j)*tx
	far := m.Height(i, j+1)*(1-tx) + m.Height(i+1, j+1)*tx
	return near*(1-tz) + far*tz
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
