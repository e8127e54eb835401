// Package viewmatrix positions the preview camera around a point-cloud mesh
// and projects its vertices to screen space.
package viewmatrix

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"pointquad-renderer/internal/quadmesh"
)

// DefaultFOV is the vertical field of view used when perspective is on and
// no FOV is configured.
const DefaultFOV = 45.0

// minSpan keeps a single-feature cloud from producing an infinite scale.
const minSpan = 0.001

// Camera orbits the mesh centre. Angles are in degrees; Yaw turns about +Y,
// then Pitch tilts about +X.
type Camera struct {
	Yaw         float64
	Pitch       float64
	Perspective bool
	FOV         float64
}

// DefaultCamera looks slightly down onto the cloud.
func DefaultCamera() Camera {
	return Camera{Pitch: -20}
}

// View is a camera resolved against a specific mesh.
type View struct {
	cam    Camera
	yaw    r3.Rotation
	pitch  r3.Rotation
	center r3.Vec
	scale  float64
	half   float64

	perspDist    float64
	perspZCenter float64
}

func (v *View) rotate(p r3.Vec) r3.Vec {
	return v.pitch.Rotate(v.yaw.Rotate(p))
}

// Fit frames verts into a size×size viewport with margin pixels on each side.
// A margin that leaves no room is ignored and the full viewport is used.
func Fit(cam Camera, verts []quadmesh.Vertex, size, margin int) *View {
	v := &View{
		cam:   cam,
		yaw:   r3.NewRotation(deg2rad(cam.Yaw), r3.Vec{Y: 1}),
		pitch: r3.NewRotation(deg2rad(cam.Pitch), r3.Vec{X: 1}),
		half:  float64(size) / 2,
	}

	lo := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for i := range verts {
		t := v.rotate(toVec(verts[i].Position))
		lo = r3.Vec{X: math.Min(lo.X, t.X), Y: math.Min(lo.Y, t.Y), Z: math.Min(lo.Z, t.Z)}
		hi = r3.Vec{X: math.Max(hi.X, t.X), Y: math.Max(hi.Y, t.Y), Z: math.Max(hi.Z, t.Z)}
	}
	if len(verts) == 0 {
		lo, hi = r3.Vec{}, r3.Vec{}
	}
	v.center = r3.Scale(0.5, r3.Add(lo, hi))

	span := math.Max(hi.X-lo.X, hi.Y-lo.Y)
	if span < minSpan {
		span = minSpan
	}
	usable := size - 2*margin
	if usable < 1 {
		usable = max(size, 1)
	}
	v.scale = float64(usable) / span

	if cam.Perspective {
		fov := cam.FOV
		if fov <= 0 {
			fov = DefaultFOV
		}
		v.perspDist = (span / 2) / math.Tan(deg2rad(fov/2))
		v.perspZCenter = v.center.Z
	}
	return v
}

// Project returns screen X, screen Y and depth for each vertex. Larger depth
// is nearer the camera.
func (v *View) Project(verts []quadmesh.Vertex) (px, py, pz []float64) {
	n := len(verts)
	px = make([]float64, n)
	py = make([]float64, n)
	pz = make([]float64, n)

	for i := range verts {
		t := v.rotate(toVec(verts[i].Position))
		x, y := t.X-v.center.X, t.Y-v.center.Y

		if v.cam.Perspective {
			depth := math.Max(v.perspDist-(t.Z-v.perspZCenter), 0.1*v.perspDist)
			f := v.perspDist / depth
			x *= f
			y *= f
		}

		px[i] = x*v.scale + v.half
		py[i] = -y*v.scale + v.half
		pz[i] = t.Z
	}
	return px, py, pz
}

// Scale returns pixels per world unit.
func (v *View) Scale() float64 {
	return v.scale
}

func toVec(p [3]float32) r3.Vec {
	return r3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}

func deg2rad(d float64) float64 {
	return d * math.Pi / 180
}
