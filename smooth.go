package hemesh

import (
	"errors"
	"log/slog"

	"github.com/soypat/hemesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Damping is the fraction of the way each vertex moves toward the mean of
// its neighbors in one smoothing pass.
const Damping = 0.5

// BoundaryRule selects how smoothing treats vertices whose one-ring is open.
type BoundaryRule uint8

const (
	// BoundaryFixed leaves boundary vertices in place and reports each one
	// as a *VertexError wrapping ErrBoundaryVertex.
	BoundaryFixed BoundaryRule = iota
	// BoundaryOneSided moves boundary vertices toward the mean of the
	// neighbors in their open fan.
	BoundaryOneSided
)

// SmoothParms configures a smoothing pass. The zero value is BoundaryFixed.
type SmoothParms struct {
	Boundary BoundaryRule
}

// Smooth performs one damped uniform Laplacian relaxation pass: every
// vertex moves Damping of the way toward the mean position of its
// one-ring neighbors. Neighbor means are computed from the positions as
// they were before the pass, so the result does not depend on vertex order.
//
// Vertices whose neighborhood cannot be walked keep their position and are
// reported in the returned error, built with errors.Join from one
// *VertexError per vertex. All other vertices are still updated.
// Vertices not used by any face are skipped silently.
func (m *Mesh) Smooth(parms SmoothParms) error {
	old := m.Positions()
	var (
		errs  []error
		nbuf  []VertexID
		err   error
		moved = make([]bool, len(m.verts))
		next  = make([]r3.Vec, len(m.verts))
	)
	for i := range m.verts {
		v := VertexID(i)
		if m.verts[v].Edge == None {
			continue
		}
		nbuf, err = m.OneRing(v, nbuf[:0])
		if err != nil && parms.Boundary == BoundaryOneSided && errors.Is(err, ErrBoundaryVertex) {
			nbuf, err = m.BoundaryFan(v, nbuf[:0])
		}
		if err != nil {
			Logger().Debug("hemesh: smoothing skipped vertex", slog.Int("vertex", i), slog.String("err", err.Error()))
			errs = append(errs, err)
			continue
		}
		var sum r3.Vec
		for _, nb := range nbuf {
			sum = r3.Add(sum, old[nb])
		}
		avg := r3.Scale(1/float64(len(nbuf)), sum)
		next[v] = d3.AddScaled(old[v], Damping, r3.Sub(avg, old[v]))
		moved[v] = true
	}
	for i := range m.verts {
		if moved[i] {
			m.verts[i].Pos = next[i]
		}
	}
	return errors.Join(errs...)
}

// SmoothN runs n smoothing passes. Boundary vertices fail the same way on
// every pass so only the errors of the first pass are returned.
func (m *Mesh) SmoothN(n int, parms SmoothParms) error {
	var first error
	for i := 0; i < n; i++ {
		err := m.Smooth(parms)
		if i == 0 {
			first = err
		}
	}
	return first
}
