// Package quadmesh builds a marker mesh for an AR point cloud: one small
// quad per feature point, rebuilt only when a new sample arrives and the
// fill material is ready.
package quadmesh

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"

	"pointquad-renderer/internal/logging"
	"pointquad-renderer/internal/material"
	"pointquad-renderer/internal/pointcloud"
)

// PointDelta is the half-extent of each marker quad in world units.
const PointDelta = 0.003

// SubmeshName names the single submesh of every built mesh.
const SubmeshName = "pointcloud"

// Target is the scene attachment point. SetRenderable(nil) removes the mesh.
type Target interface {
	Enabled() bool
	SetRenderable(r *Renderable)
}

// Outcome reports what an Update call did.
type Outcome int

const (
	OutcomeDisabled Outcome = iota
	OutcomeUnchanged
	OutcomePending
	OutcomeMaterialFailed
	OutcomeRejected
	OutcomeCleared
	OutcomeBuilt
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDisabled:
		return "disabled"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomePending:
		return "pending"
	case OutcomeMaterialFailed:
		return "material-failed"
	case OutcomeRejected:
		return "rejected"
	case OutcomeCleared:
		return "cleared"
	case OutcomeBuilt:
		return "built"
	}
	return "unknown"
}

// Options configures a Builder. Zero fields take defaults.
type Options struct {
	Resolver  material.Resolver // default material.ColorResolver
	Finalizer Finalizer         // default BoundsFinalizer
}

// Builder converts point-cloud samples into quad meshes for a Target.
//
// Update is meant to be driven once per frame from a single goroutine.
// Finalization runs in the background; of several in flight, only the most
// recently requested one is applied.
type Builder struct {
	target    Target
	resolver  material.Resolver
	finalizer Finalizer

	bg       context.Context
	material *material.Holder

	hasLast bool
	lastID  int64
	scratch scratch

	requested atomic.Uint64
	applyMu   sync.Mutex
	applied   uint64

	wg       sync.WaitGroup
	errMu    sync.Mutex
	err      error
	failures atomic.Uint64
}

// NewBuilder returns a builder attached to target. Call Initialize before
// the first Update; until then every Update reports OutcomePending.
func NewBuilder(target Target, opts Options) *Builder {
	if opts.Resolver == nil {
		opts.Resolver = material.ColorResolver{}
	}
	if opts.Finalizer == nil {
		opts.Finalizer = BoundsFinalizer{}
	}
	return &Builder{
		target:    target,
		resolver:  opts.Resolver,
		finalizer: opts.Finalizer,
		bg:        context.Background(),
	}
}

// Initialize starts resolving the fill material. It does not block. ctx
// bounds the material resolution and every later background finalization.
func (b *Builder) Initialize(ctx context.Context, fill material.Color) {
	b.bg = ctx
	b.material = material.Resolve(ctx, b.resolver, fill)
}

// Material returns the holder created by Initialize, or nil.
func (b *Builder) Material() *material.Holder {
	return b.material
}

// Update rebuilds the mesh for s. It never blocks on the material or on
// finalization. A sample whose length is not a multiple of
// pointcloud.Stride is rejected with pointcloud.ErrMalformedSample and leaves
// the builder untouched.
func (b *Builder) Update(s pointcloud.Sample) (Outcome, error) {
	if !b.target.Enabled() {
		return OutcomeDisabled, nil
	}
	if b.hasLast && s.ID == b.lastID {
		return OutcomeUnchanged, nil
	}
	handle, state := b.material.Peek()
	switch state {
	case material.Unresolved:
		return OutcomePending, nil
	case material.Failed:
		return OutcomeMaterialFailed, nil
	}
	if err := s.Validate(); err != nil {
		return OutcomeRejected, err
	}

	b.hasLast = true
	b.lastID = s.ID
	gen := b.requested.Add(1)

	n := s.FeatureCount()
	if n < 1 {
		b.apply(gen, nil)
		return OutcomeCleared, nil
	}

	if b.scratch.ensure(n) {
		logging.Logger().Debug("quadmesh: scratch grown",
			"features", n, "vertices", len(b.scratch.vertices), "indices", len(b.scratch.indices))
	}
	for i := 0; i < n; i++ {
		f := s.Feature(i)
		b.scratch.writeQuad(i, f.X, f.Y, f.Z)
	}

	m := &Mesh{
		SampleID: s.ID,
		Vertices: slices.Clone(b.scratch.vertices[:n*4]),
		Submeshes: []Submesh{{
			Name:     SubmeshName,
			Material: handle,
			Indices:  slices.Clone(b.scratch.indices[:n*6]),
		}},
	}

	b.wg.Add(1)
	go b.finalize(gen, m)
	return OutcomeBuilt, nil
}

func (b *Builder) finalize(gen uint64, m *Mesh) {
	defer b.wg.Done()

	r, err := b.finalizer.Finalize(b.bg, m)
	if err == nil && r == nil {
		err = errors.New("quadmesh: finalizer returned no renderable")
	}
	if err != nil {
		b.errMu.Lock()
		b.err = err
		b.errMu.Unlock()
		b.failures.Add(1)
		logging.Logger().Warn("quadmesh: finalize failed", "sample", m.SampleID, "generation", gen, "err", err)
		return
	}
	r.Generation = gen
	b.apply(gen, r)
}

// apply hands r to the target if gen is still the latest request.
func (b *Builder) apply(gen uint64, r *Renderable) bool {
	b.applyMu.Lock()
	defer b.applyMu.Unlock()

	if gen != b.requested.Load() || gen <= b.applied {
		logging.Logger().Debug("quadmesh: stale finalization dropped",
			"generation", gen, "latest", b.requested.Load())
		return false
	}
	b.applied = gen
	b.target.SetRenderable(r)
	return true
}

// Wait blocks until every finalization started so far has completed.
func (b *Builder) Wait() {
	b.wg.Wait()
}

// Err returns the most recent finalization error, if any.
func (b *Builder) Err() error {
	b.errMu.Lock()
	defer b.errMu.Unlock()
	return b.err
}

// Failures returns the number of finalizations that have failed so far.
// Comparing it across Wait tells whether the updates in between failed.
func (b *Builder) Failures() uint64 {
	return b.failures.Load()
}

// Generation returns the number of rebuilds or clears requested so far.
func (b *Builder) Generation() uint64 {
	return b.requested.Load()
}

// Capacity returns the current scratch buffer lengths.
func (b *Builder) Capacity() (vertices, indices int) {
	return len(b.scratch.vertices), len(b.scratch.indices)
}
