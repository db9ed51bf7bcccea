package linop

import (
	"math"

	"github.com/numerics-forge/linop/backend"
	"github.com/numerics-forge/linop/profile"
)

// UnscaledFFT is a leaf operator applying a batched, unnormalized 3-D FFT
// over the leading three axes of a column-major array (spec.md §4.4). The
// inverse is unscaled: it does not divide by N, so FFT.H() is NOT FFT's
// inverse in the usual normalized sense, only its conjugate-transpose.
//
// Unlike the other leaves, UnscaledFFT only supports alpha=1, beta=0: the
// backend writes its transform directly into y and does not accumulate
// (spec.md §4.4, §7).
type UnscaledFFT struct {
	base
	shape [3]int // (u, v, w), the transform's leading three axes
}

// NewUnscaledFFT creates an UnscaledFFT leaf over the given 3-D shape. The
// operator's flattened (rows, cols) shape is (u*v*w, u*v*w): it's square
// and maps a batch of flattened volumes to flattened volumes of the same
// size.
func NewUnscaledFFT(be backend.Backend, name string, shape [3]int, opts ...Option) *UnscaledFFT {
	u, v, w := shape[0], shape[1], shape[2]
	if u <= 0 || v <= 0 || w <= 0 {
		panic(Error("linop: NewUnscaledFFT: shape dimensions must be positive"))
	}
	f := &UnscaledFFT{shape: shape}
	f.be = be
	f.name = name
	for _, o := range opts {
		o(&f.base)
	}
	f.self = f
	return f
}

// Shape implements Operator.
func (f *UnscaledFFT) Shape() (int, int) {
	n := f.shape[0] * f.shape[1] * f.shape[2]
	return n, n
}

// Kind implements Operator.
func (f *UnscaledFFT) Kind() string { return "UnscaledFFT" }

// WorkspaceBytes reports the backend scratch space a transform over ncols
// batch columns requires, for memusage's intermediate-byte accounting
// (spec.md §4.10).
func (f *UnscaledFFT) WorkspaceBytes(ncols int) int {
	return f.be.FFTWorkspaceBytes([4]int{f.shape[0], f.shape[1], f.shape[2], ncols})
}

func (f *UnscaledFFT) evalNode(y, x backend.Array, alpha, beta complex64, forward bool) error {
	if alpha != 1 || beta != 0 {
		return &UnsupportedScalarError{Alpha: alpha, Beta: beta}
	}

	// Flop count follows the textbook radix FFT estimate (5*n*log2(n) per
	// batch column) rather than this reference backend's actual O(n^2)
	// direct-summation cost: the profiling field reports the algorithm's
	// asymptotic complexity, not this unoptimized implementation's.
	n := f.shape[0] * f.shape[1] * f.shape[2]
	nflops := 5 * float64(n) * math.Log2(float64(n)) * float64(x.Cols)

	scope := profile.Start("fft", profile.F("nflops", nflops), profile.F("nbytes", float64(x.Nbytes()+y.Nbytes())))
	defer scope.Stop()

	if forward {
		return f.be.Fftn(y, x, f.shape)
	}
	return f.be.Ifftn(y, x, f.shape)
}
