// Package blas64c provides a simple interface to a complex64 BLAS-like API,
// using column-major storage with an explicit leading dimension.
//
// It mirrors the shape of gonum's blas64/cblas128 packages (free functions
// over a Vector/General pair), generalized from their row-major float64 and
// complex128 element types to the column-major complex64 layout the
// operator algebra in this module requires.
package blas64c

import (
	"math"
	"math/cmplx"
)

const negInc = "blas64c: negative vector increment"

// Vector represents a vector with an associated element increment.
type Vector struct {
	Inc  int
	Data []complex64
}

// General represents a matrix using column-major storage. Stride is the
// leading dimension: the number of elements between the start of one
// column and the start of the next. Stride must be >= Rows; it may exceed
// Rows when General is a non-owning sub-view of a larger buffer.
type General struct {
	Rows, Cols int
	Stride     int
	Data       []complex64
}

// at returns the element at (i, j) under column-major storage.
func (a General) at(i, j int) complex64 {
	return a.Data[j*a.Stride+i]
}

func (a General) set(i, j int, v complex64) {
	a.Data[j*a.Stride+i] = v
}

// Axpy computes y += alpha * x.
func Axpy(n int, alpha complex64, x, y Vector) {
	if alpha == 0 {
		return
	}
	ix, iy := 0, 0
	for i := 0; i < n; i++ {
		y.Data[iy] += alpha * x.Data[ix]
		ix += x.Inc
		iy += y.Inc
	}
}

// Dotc computes the Hermitian inner product conj(x)^T * y.
func Dotc(n int, x, y Vector) complex64 {
	var sum complex64
	ix, iy := 0, 0
	for i := 0; i < n; i++ {
		sum += complex64(cmplx.Conj(complex128(x.Data[ix]))) * y.Data[iy]
		ix += x.Inc
		iy += y.Inc
	}
	return sum
}

// Nrm2 returns the Euclidean norm ||x||_2. It panics if the vector
// increment is negative.
func Nrm2(n int, x Vector) float32 {
	if x.Inc < 0 {
		panic(negInc)
	}
	var sumSq float64
	ix := 0
	for i := 0; i < n; i++ {
		v := complex128(x.Data[ix])
		sumSq += real(v)*real(v) + imag(v)*imag(v)
		ix += x.Inc
	}
	return float32(math.Sqrt(sumSq))
}

// Scal computes x *= alpha. It panics if the vector increment is negative.
func Scal(n int, alpha complex64, x Vector) {
	if x.Inc < 0 {
		panic(negInc)
	}
	ix := 0
	for i := 0; i < n; i++ {
		x.Data[ix] *= alpha
		ix += x.Inc
	}
}

// Transpose describes how a General operand participates in Gemm.
type Transpose byte

const (
	NoTrans   Transpose = 'N'
	ConjTrans Transpose = 'C'
)

// Gemm computes C = alpha*op(A)*op(B) + beta*C where op(X) is X or its
// conjugate transpose, over column-major General matrices.
func Gemm(tA, tB Transpose, alpha complex64, a, b General, beta complex64, c General) {
	rowA, colA := a.Rows, a.Cols
	if tA == ConjTrans {
		rowA, colA = a.Cols, a.Rows
	}
	rowB, colB := b.Rows, b.Cols
	if tB == ConjTrans {
		rowB, colB = b.Cols, b.Rows
	}
	m, k, n := rowA, colA, colB
	if k != rowB {
		panic("blas64c: Gemm: inner dimensions mismatch")
	}
	if c.Rows != m || c.Cols != n {
		panic("blas64c: Gemm: output dimensions mismatch")
	}

	if beta == 0 {
		for j := 0; j < n; j++ {
			for i := 0; i < m; i++ {
				c.set(i, j, 0)
			}
		}
	} else if beta != 1 {
		for j := 0; j < n; j++ {
			for i := 0; i < m; i++ {
				c.set(i, j, beta*c.at(i, j))
			}
		}
	}
	if alpha == 0 {
		return
	}

	aElem := func(i, p int) complex64 {
		if tA == ConjTrans {
			return complex64(cmplx.Conj(complex128(a.at(p, i))))
		}
		return a.at(i, p)
	}
	bElem := func(p, j int) complex64 {
		if tB == ConjTrans {
			return complex64(cmplx.Conj(complex128(b.at(j, p))))
		}
		return b.at(p, j)
	}

	for j := 0; j < n; j++ {
		for p := 0; p < k; p++ {
			bpj := alpha * bElem(p, j)
			if bpj == 0 {
				continue
			}
			for i := 0; i < m; i++ {
				c.set(i, j, c.at(i, j)+aElem(i, p)*bpj)
			}
		}
	}
}
