// Package refblas is a reference, pure-Go implementation of the
// backend.Backend contract. It has no cgo and no vendor BLAS/FFT linkage —
// that linkage is explicitly out of scope for this module (spec.md §1
// treats it as an external collaborator) — so its cgemm, ccsrmm and fftn
// primitives are plain Go loops, in the same spirit as the teacher's own
// blas/gonum package sits beside its cgo-linked blas/cgo.
package refblas

import (
	"runtime"
	"sync"

	"github.com/numerics-forge/linop/backend"
	"github.com/numerics-forge/linop/blas64c"
)

// Backend is the reference implementation of backend.Backend.
type Backend struct {
	mu    sync.Mutex
	plans map[planKey]*plan
}

type planKey struct {
	u, v, w, batch int
}

type plan struct {
	u, v, w, batch int
}

// New returns a fresh reference backend with an empty FFT plan cache.
func New() *Backend {
	return &Backend{plans: make(map[planKey]*plan)}
}

// ZeroArray implements backend.Backend.
func (b *Backend) ZeroArray(r, c int) backend.Array {
	return backend.NewArray(r, c, make([]complex64, r*c))
}

// CopyArray implements backend.Backend.
func (b *Backend) CopyArray(r, c int, host []complex64) backend.Array {
	data := make([]complex64, r*c)
	copy(data, host)
	return backend.NewArray(r, c, data)
}

// Scale implements backend.Backend.
func (b *Backend) Scale(x backend.Array, alpha complex64) {
	for j := 0; j < x.Cols; j++ {
		row := x.Data[j*x.Leading : j*x.Leading+x.Rows]
		blas64c.Scal(len(row), alpha, blas64c.Vector{Inc: 1, Data: row})
	}
}

// Axpy implements backend.Backend.
func (b *Backend) Axpy(y backend.Array, alpha complex64, x backend.Array) {
	if x.Rows != y.Rows || x.Cols != y.Cols {
		panic("refblas: Axpy: shape mismatch")
	}
	for j := 0; j < x.Cols; j++ {
		xr := x.Data[j*x.Leading : j*x.Leading+x.Rows]
		yr := y.Data[j*y.Leading : j*y.Leading+y.Rows]
		blas64c.Axpy(x.Rows, alpha, blas64c.Vector{Inc: 1, Data: xr}, blas64c.Vector{Inc: 1, Data: yr})
	}
}

// Dot implements backend.Backend. It returns only the real part of the
// Hermitian inner product, matching the reference Python backend's
// behavior (spec.md §9 open question, preserved rather than "fixed").
func (b *Backend) Dot(x, y backend.Array) float32 {
	if x.Rows != y.Rows || x.Cols != y.Cols {
		panic("refblas: Dot: shape mismatch")
	}
	var sum complex64
	for j := 0; j < x.Cols; j++ {
		xr := x.Data[j*x.Leading : j*x.Leading+x.Rows]
		yr := y.Data[j*y.Leading : j*y.Leading+y.Rows]
		sum += blas64c.Dotc(x.Rows, blas64c.Vector{Inc: 1, Data: xr}, blas64c.Vector{Inc: 1, Data: yr})
	}
	return real(sum)
}

// Norm2 implements backend.Backend. It returns the squared 2-norm, not the
// norm itself, matching the reference Python backend's behavior (spec.md
// §9 open question, preserved rather than "fixed").
func (b *Backend) Norm2(x backend.Array) float32 {
	var sumSq float64
	for j := 0; j < x.Cols; j++ {
		row := x.Data[j*x.Leading : j*x.Leading+x.Rows]
		n := blas64c.Nrm2(len(row), blas64c.Vector{Inc: 1, Data: row})
		sumSq += float64(n) * float64(n)
	}
	return float32(sumSq)
}

// Cgemm implements backend.Backend.
func (b *Backend) Cgemm(y, m, x backend.Array, alpha, beta complex64, forward bool) error {
	tA := blas64c.NoTrans
	if !forward {
		tA = blas64c.ConjTrans
	}
	blas64c.Gemm(tA, blas64c.NoTrans, alpha, m.General(), x.General(), beta, y.General())
	return nil
}

// MaxThreads implements backend.Backend. It reports runtime.GOMAXPROCS(0);
// the reference backend's own primitives are single-threaded loops.
func (b *Backend) MaxThreads() int { return runtime.GOMAXPROCS(0) }
