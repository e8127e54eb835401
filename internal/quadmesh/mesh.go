package quadmesh

import (
	"math"

	"pointquad-renderer/internal/material"
)

// Vertex is a mesh vertex. The builder only sets Position.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Submesh is a triangle list over the parent mesh's vertices drawn with one
// material. Indices come in groups of three.
type Submesh struct {
	Name     string
	Material *material.Handle
	Indices  []uint32
}

// Mesh is an immutable mesh definition. It owns its slices; nothing else
// aliases them.
type Mesh struct {
	SampleID  int64
	Vertices  []Vertex
	Submeshes []Submesh
}

// TriangleCount returns the number of triangles across all submeshes.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, s := range m.Submeshes {
		n += len(s.Indices) / 3
	}
	return n
}

// Bounds is an axis-aligned box in mesh space.
type Bounds struct {
	Min, Max [3]float32
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float64 {
	return [3]float64{
		(float64(b.Min[0]) + float64(b.Max[0])) / 2,
		(float64(b.Min[1]) + float64(b.Max[1])) / 2,
		(float64(b.Min[2]) + float64(b.Max[2])) / 2,
	}
}

// Bounds computes the axis-aligned bounds of all vertices. An empty mesh
// yields the zero box.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	inf := float32(math.Inf(1))
	b := Bounds{Min: [3]float32{inf, inf, inf}, Max: [3]float32{-inf, -inf, -inf}}
	for _, v := range m.Vertices {
		for k := 0; k < 3; k++ {
			if v.Position[k] < b.Min[k] {
				b.Min[k] = v.Position[k]
			}
			if v.Position[k] > b.Max[k] {
				b.Max[k] = v.Position[k]
			}
		}
	}
	return b
}

// Renderable is a finalized mesh ready for display.
type Renderable struct {
	Mesh       *Mesh
	Bounds     Bounds
	Generation uint64
}
