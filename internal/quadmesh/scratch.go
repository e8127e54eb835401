package quadmesh

// scratch holds the reusable vertex and index arrays. Their lengths are the
// high-water mark of features seen so far: they grow on demand and never
// shrink.
type scratch struct {
	vertices []Vertex
	indices  []uint32
}

// ensure makes room for features quads and reports whether it reallocated.
func (s *scratch) ensure(features int) bool {
	nv, ni := features*4, features*6
	if len(s.vertices) >= nv && len(s.indices) >= ni {
		return false
	}
	s.vertices = make([]Vertex, nv)
	s.indices = make([]uint32, ni)
	return true
}

// writeQuad fills quad i centred at (x, y, z).
//
// Vertex 1 and vertex 3 coincide; the second triangle reuses the first
// one's footprint with opposite winding.
func (s *scratch) writeQuad(i int, x, y, z float32) {
	v := s.vertices[i*4 : i*4+4]
	v[0] = Vertex{Position: [3]float32{x, y + PointDelta, z}}
	v[1] = Vertex{Position: [3]float32{x + PointDelta, y, z}}
	v[2] = Vertex{Position: [3]float32{x, y - PointDelta, z}}
	v[3] = Vertex{Position: [3]float32{x + PointDelta, y, z}}

	base := uint32(i * 4)
	idx := s.indices[i*6 : i*6+6]
	idx[0], idx[1], idx[2] = base, base+1, base+2
	idx[3], idx[4], idx[5] = base+2, base+3, base
}
