package refblas

import (
	"fmt"
	"math"

	"github.com/numerics-forge/linop/backend"
)

// Fftn implements backend.Backend. x and y are dense column-major arrays
// whose Rows*Cols == u*v*w*batch, laid out as a Fortran-order (u, v, w,
// batch) tensor: index i + u*(j + v*(k + w*bIdx)).
func (b *Backend) Fftn(y, x backend.Array, shape [3]int) error {
	return b.transform(y, x, shape, -1)
}

// Ifftn implements backend.Backend. It is the *unscaled* inverse transform
// (no 1/(uvw) normalization), matching spec.md §4.4's UnscaledFFT contract.
func (b *Backend) Ifftn(y, x backend.Array, shape [3]int) error {
	return b.transform(y, x, shape, +1)
}

func (b *Backend) transform(y, x backend.Array, shape [3]int, sign float64) error {
	u, v, w := shape[0], shape[1], shape[2]
	if u <= 0 || v <= 0 || w <= 0 {
		return fmt.Errorf("refblas: fft: non-positive shape %v", shape)
	}
	n := u * v * w
	if n == 0 || x.Size()%n != 0 {
		return fmt.Errorf("refblas: fft: size %d not a multiple of shape %v", x.Size(), shape)
	}
	batch := x.Size() / n
	if x.Size() != y.Size() {
		return fmt.Errorf("refblas: fft: x/y size mismatch")
	}

	b.getOrCreatePlan(u, v, w, batch)

	// Dense work buffer in (u,v,w,batch) Fortran order, densely packed
	// regardless of x's own Leading, since ToHost drops any padding.
	work := x.ToHost()
	out := make([]complex64, len(work))
	copy(out, work)

	dftAxis(out, u, 1, v*w*batch, sign)
	dftAxis(out, v, u, w*batch, sign)
	dftAxis(out, w, u*v, batch, sign)

	// Scatter back into y's (possibly padded) column-major storage.
	y.CopyFrom(out)
	return nil
}

func (b *Backend) getOrCreatePlan(u, v, w, batch int) *plan {
	key := planKey{u, v, w, batch}
	b.mu.Lock()
	defer b.mu.Unlock()
	if p, ok := b.plans[key]; ok {
		return p
	}
	p := &plan{u: u, v: v, w: w, batch: batch}
	b.plans[key] = p
	return p
}

// FFTWorkspaceBytes implements backend.Backend: the reference backend
// needs one extra dense complex64 buffer the size of the batched transform
// (see transform's `out` allocation above).
func (b *Backend) FFTWorkspaceBytes(shape [4]int) int {
	u, v, w, batch := shape[0], shape[1], shape[2], shape[3]
	return u * v * w * batch * 8
}

// dftAxis applies a direct (O(n^2)) 1-D DFT of length n along one axis of
// a Fortran-order tensor stored flat in data, in place. outer is the
// stride (in elements) between consecutive samples along the transformed
// axis (the combined extent of the axes before it); groups is the combined
// extent of the axes after it, so outer*groups length-n transforms are
// applied.
//
// Concretely: data is viewed as having shape (outer, n, groups) in
// Fortran order, i.e. flat index = o + outer*(k + n*g).
func dftAxis(data []complex64, n, outer, groups int, sign float64) {
	if n == 1 {
		return
	}
	twiddle := make([]complex128, n)
	for k := 0; k < n; k++ {
		theta := sign * 2 * math.Pi * float64(k) / float64(n)
		twiddle[k] = complex(math.Cos(theta), math.Sin(theta))
	}

	buf := make([]complex128, n)
	out := make([]complex128, n)
	for g := 0; g < groups; g++ {
		for o := 0; o < outer; o++ {
			base := o + outer*n*g
			for k := 0; k < n; k++ {
				buf[k] = complex128(data[base+outer*k])
			}
			for freq := 0; freq < n; freq++ {
				var sum complex128
				for k := 0; k < n; k++ {
					sum += buf[k] * twiddle[(freq*k)%n]
				}
				out[freq] = sum
			}
			for k := 0; k < n; k++ {
				data[base+outer*k] = complex64(out[k])
			}
		}
	}
}
