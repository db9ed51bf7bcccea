// Package backend defines the contract that every numerical backend
// (dense BLAS, sparse CSR multiply, batched 3-D FFT) must satisfy so that
// the operator algebra in package linop can evaluate a tree without ever
// materializing the composite matrix.
//
// A Backend value is not safe for concurrent eval of the same operator
// tree: composite nodes allocate transient Arrays through the backend that
// are not tagged by call site (spec §5).
package backend

import "github.com/numerics-forge/linop/blas64c"

// Array is a column-major complex64 device buffer. Storage is shared by
// slices: a slice produced by Col is a non-owning view whose backing array
// must outlive it.
type Array struct {
	Rows, Cols int
	// Leading is the leading dimension: the stride, in elements, between
	// the start of one column and the next. Leading >= Rows; it may
	// exceed Rows when Array is a sub-view of a larger buffer.
	Leading int
	Data    []complex64
	owned   bool
}

// NewArray wraps data as an owning r×c Array with the minimal leading
// dimension (no padding).
func NewArray(r, c int, data []complex64) Array {
	if len(data) != r*c {
		panic("backend: Array: data length does not match shape")
	}
	return Array{Rows: r, Cols: c, Leading: r, Data: data, owned: true}
}

// Size is the number of elements addressed by the array (Rows*Cols),
// independent of Leading.
func (a Array) Size() int { return a.Rows * a.Cols }

// Nbytes is the number of bytes occupied by the addressed elements.
func (a Array) Nbytes() int { return a.Size() * 8 } // complex64 = 8 bytes

// General returns the blas64c.General view of the array for passing into
// blas64c routines.
func (a Array) General() blas64c.General {
	return blas64c.General{Rows: a.Rows, Cols: a.Cols, Stride: a.Leading, Data: a.Data}
}

// Vector returns a's contents as a blas64c.Vector, valid only when a is a
// single column (or has been reshaped to look like one by the caller).
func (a Array) Vector() blas64c.Vector {
	return blas64c.Vector{Inc: 1, Data: a.Data[:a.Size()]}
}

// Col returns a non-owning view of columns [lo, hi) of a.
func (a Array) Col(lo, hi int) Array {
	if lo < 0 || hi > a.Cols || lo > hi {
		panic("backend: Array: column slice out of range")
	}
	start := lo * a.Leading
	end := start + (hi-lo-1)*a.Leading + a.Rows
	if hi == lo {
		end = start
	}
	return Array{
		Rows:    a.Rows,
		Cols:    hi - lo,
		Leading: a.Leading,
		Data:    a.Data[start:end],
	}
}

// Row returns a non-owning view of rows [lo, hi) of a, keeping every
// column. Used by BlockDiag/VStack/HStack to partition the feature axis
// while leaving the batch (column) axis untouched.
func (a Array) Row(lo, hi int) Array {
	if lo < 0 || hi > a.Rows || lo > hi {
		panic("backend: Array: row slice out of range")
	}
	start := lo
	end := start
	if a.Cols > 0 {
		end = (a.Cols-1)*a.Leading + hi
	}
	return Array{
		Rows:    hi - lo,
		Cols:    a.Cols,
		Leading: a.Leading,
		Data:    a.Data[start:end],
	}
}

// CopyFrom overwrites a's addressed elements from a densely packed
// column-major slice of length a.Size(), respecting a's own Leading (so a
// may be a padded sub-view).
func (a Array) CopyFrom(flat []complex64) {
	if len(flat) != a.Size() {
		panic("backend: Array: CopyFrom length mismatch")
	}
	for j := 0; j < a.Cols; j++ {
		copy(a.Data[j*a.Leading:j*a.Leading+a.Rows], flat[j*a.Rows:(j+1)*a.Rows])
	}
}

// Zero sets every addressed element of a to 0.
func (a Array) Zero() {
	for j := 0; j < a.Cols; j++ {
		row := a.Data[j*a.Leading : j*a.Leading+a.Rows]
		for i := range row {
			row[i] = 0
		}
	}
}

// ToHost copies the addressed elements into a freshly allocated
// row-by-row-major-free, densely packed column-major slice of length
// Rows*Cols (i.e. a copy with Leading == Rows).
func (a Array) ToHost() []complex64 {
	out := make([]complex64, a.Size())
	for j := 0; j < a.Cols; j++ {
		copy(out[j*a.Rows:(j+1)*a.Rows], a.Data[j*a.Leading:j*a.Leading+a.Rows])
	}
	return out
}

// SparseHandle is a backend-resident CSR matrix, created once per leaf and
// memoized by the caller (spec §5: "a leaf shared between two trees
// uploads once").
type SparseHandle interface {
	// Forward computes y <- alpha*M*x + beta*y.
	Forward(y, x Array, alpha, beta complex64) error
	// Adjoint computes y <- alpha*M^H*x + beta*y.
	Adjoint(y, x Array, alpha, beta complex64) error
	// Nbytes is the device-resident size of the matrix (data + indices +
	// indptr), used by the memory-usage analysis.
	Nbytes() int
}

// HostCSR is the minimal view of a host-side sparse matrix a Backend needs
// to build a SparseHandle. It matches package csr's Matrix.
type HostCSR struct {
	Rows, Cols int
	Indptr     []int
	Indices    []int
	Data       []complex64
	// IndexBase is 0 or 1; an implementation that requires a specific base
	// (e.g. a vendor CSRMM expecting 1-based indices) either translates or
	// rejects the other base (refblas's CSRMatrix rejects base 1).
	IndexBase int
}

// Backend is the numerical contract every leaf operator evaluates through.
// See spec.md §6.1.
type Backend interface {
	// ZeroArray allocates a new, zeroed r×c device array.
	ZeroArray(r, c int) Array
	// CopyArray uploads a densely packed column-major host slice of
	// length r*c into a new owned device array.
	CopyArray(r, c int, host []complex64) Array
	// Scale computes x *= alpha in place.
	Scale(x Array, alpha complex64)

	// Axpy computes y += alpha*x for same-shaped arrays, treated as flat
	// vectors in column-major order.
	Axpy(y Array, alpha complex64, x Array)
	// Dot returns the real part of conj(x)^T * y (spec §9 open question:
	// preserved exactly as the reference backend behaves).
	Dot(x, y Array) float32
	// Norm2 returns ||x||^2, the squared 2-norm (spec §9 open question:
	// preserved exactly as the reference backend behaves).
	Norm2(x Array) float32

	// Cgemm computes y <- alpha*op(M)*x + beta*y where op is identity if
	// forward, conjugate-transpose otherwise.
	Cgemm(y Array, m Array, x Array, alpha, beta complex64, forward bool) error

	// CSRMatrix uploads and caches host's CSR structure under the given
	// diagnostic name, returning a reusable SparseHandle.
	CSRMatrix(host HostCSR, name string) (SparseHandle, error)
	// Ccsrmm computes y <- alpha*op(M)*x + beta*y directly from host CSR
	// arrays, without requiring a pre-built SparseHandle.
	Ccsrmm(y Array, host HostCSR, x Array, alpha, beta complex64, adjoint bool) error

	// Fftn computes the batched forward 3-D DFT of x into y. x and y have
	// matching shape (u, v, w, batch) flattened into Array's 2-D view by
	// the caller; Fftn only needs shape[:3] + size to plan.
	Fftn(y, x Array, shape [3]int) error
	// Ifftn computes the batched backward (unscaled, no 1/N factor) 3-D
	// DFT of x into y.
	Ifftn(y, x Array, shape [3]int) error
	// FFTWorkspaceBytes reports the workspace a batched 3-D FFT of the
	// given logical shape (u, v, w, batch) would need, for the memory
	// analysis (spec §4.10).
	FFTWorkspaceBytes(shape [4]int) int

	// MaxThreads reports the backend's thread count for diagnostics
	// (spec §6.1, surfaced in SpMatrix's profiling record).
	MaxThreads() int
}

// Error is a sentinel error type for backend primitive failures (spec §7:
// "surfaced as a runtime error carrying the vendor message"), mirroring the
// teacher's mat64.Error convention of a string-based error type.
type Error string

func (e Error) Error() string { return string(e) }
