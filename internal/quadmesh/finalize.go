package quadmesh

import (
	"context"
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a submesh references a vertex past the
// end of the mesh.
var ErrIndexOutOfRange = errors.New("quadmesh: index out of range")

// Finalizer turns a mesh definition into a renderable. It runs off the
// update path and may block.
type Finalizer interface {
	Finalize(ctx context.Context, m *Mesh) (*Renderable, error)
}

// FinalizerFunc adapts a function to Finalizer.
type FinalizerFunc func(ctx context.Context, m *Mesh) (*Renderable, error)

func (f FinalizerFunc) Finalize(ctx context.Context, m *Mesh) (*Renderable, error) {
	return f(ctx, m)
}

// BoundsFinalizer checks index validity and computes bounds.
type BoundsFinalizer struct{}

func (BoundsFinalizer) Finalize(ctx context.Context, m *Mesh) (*Renderable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	nv := uint32(len(m.Vertices))
	for _, sm := range m.Submeshes {
		if len(sm.Indices)%3 != 0 {
			return nil, fmt.Errorf("quadmesh: submesh %q has %d indices, not a triangle list", sm.Name, len(sm.Indices))
		}
		for _, ix := range sm.Indices {
			if ix >= nv {
				return nil, fmt.Errorf("%w: submesh %q index %d, %d vertices", ErrIndexOutOfRange, sm.Name, ix, nv)
			}
		}
	}
	return &Renderable{Mesh: m, Bounds: m.Bounds()}, nil
}
