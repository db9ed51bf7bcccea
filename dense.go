package linop

import (
	"github.com/numerics-forge/linop/backend"
	"github.com/numerics-forge/linop/profile"
)

// DenseMatrix is a leaf operator holding an immutable, column-major
// complex64 matrix. The first Eval lazily uploads it to the backend; the
// device handle is then cached (spec.md §4.2).
type DenseMatrix struct {
	base
	rows, cols int
	data       []complex64 // host, column-major, length rows*cols
	device     *backend.Array
}

// NewDenseMatrix creates a DenseMatrix leaf from a densely packed,
// column-major host slice of length rows*cols.
func NewDenseMatrix(be backend.Backend, name string, rows, cols int, data []complex64, opts ...Option) *DenseMatrix {
	if rows <= 0 || cols <= 0 {
		panic(Error("linop: NewDenseMatrix: rows and cols must be positive"))
	}
	if len(data) != rows*cols {
		panic(Error("linop: NewDenseMatrix: data length does not match rows*cols"))
	}
	d := &DenseMatrix{rows: rows, cols: cols, data: data}
	d.be = be
	d.name = name
	for _, o := range opts {
		o(&d.base)
	}
	d.self = d
	return d
}

// Shape implements Operator.
func (d *DenseMatrix) Shape() (int, int) { return d.rows, d.cols }

// Kind implements Operator.
func (d *DenseMatrix) Kind() string { return "DenseMatrix" }

// Bytes is the host data size, for memusage's data-byte accounting
// (spec.md §4.10).
func (d *DenseMatrix) Bytes() int { return len(d.data) * 8 }

func (d *DenseMatrix) deviceMatrix() backend.Array {
	if d.device == nil {
		arr := d.be.CopyArray(d.rows, d.cols, d.data)
		d.device = &arr
	}
	return *d.device
}

func (d *DenseMatrix) evalNode(y, x backend.Array, alpha, beta complex64, forward bool) error {
	m := d.deviceMatrix()
	nflops := float64(d.rows) * float64(d.cols) * float64(x.Cols) * 5
	scope := profile.Start("cgemm", profile.F("nflops", nflops))
	defer scope.Stop()
	return d.be.Cgemm(y, m, x, alpha, beta, forward)
}
