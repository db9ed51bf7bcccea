// Package csr holds a host-side compressed-sparse-row matrix handle for
// complex64 values, used by linop.SpMatrix before a backend uploads and
// caches a device-resident copy.
//
// The field layout (indptr/ind/data) follows the compressedSparse
// convention common to Go sparse-matrix packages, generalized to complex64
// and to a configurable index base: the reference backend used in this
// module is 0-based, but spec.md notes a vendor MKL path is 1-based, so the
// base travels with the matrix rather than being assumed.
package csr

import "sort"

// Matrix is a CSR sparse matrix. New does not sort the column indices
// within a row; SortIndices puts it in canonical (row-sorted) form.
type Matrix struct {
	Rows, Cols int
	// Indptr has length Rows+1; row i's entries are Indices[Indptr[i]:Indptr[i+1]]
	// and Data[Indptr[i]:Indptr[i+1]].
	Indptr  []int
	Indices []int
	Data    []complex64
	// IndexBase is 0 or 1. New matrices are always constructed 0-based;
	// a backend that requires 1-based indices performs the translation
	// itself when it uploads.
	IndexBase int
}

// New builds a 0-based CSR matrix from parallel indptr/indices/data slices.
// It panics if the slices are inconsistent with (rows, cols).
func New(rows, cols int, indptr, indices []int, data []complex64) *Matrix {
	if len(indptr) != rows+1 {
		panic("csr: indptr length must be rows+1")
	}
	if len(indices) != len(data) {
		panic("csr: indices and data length mismatch")
	}
	if indptr[0] != 0 || indptr[rows] != len(data) {
		panic("csr: malformed indptr")
	}
	return &Matrix{Rows: rows, Cols: cols, Indptr: indptr, Indices: indices, Data: data}
}

// NNZ returns the number of stored (nonzero) entries.
func (m *Matrix) NNZ() int { return len(m.Data) }

// Bytes returns the device-resident byte footprint of data+indices+indptr,
// matching the breakdown spec.md §4.10 asks the memory analysis to use for
// a CSR leaf.
func (m *Matrix) Bytes() int {
	const complex64Size = 8
	const intSize = 8
	return len(m.Data)*complex64Size + len(m.Indices)*intSize + len(m.Indptr)*intSize
}

// SortIndices sorts the column indices (and co-permutes the matching data)
// within each row. Most backend CSR multiply kernels, including vendor CSR
// multiply routines, require this (spec.md §4.3: "sorts indices within
// each row" on first use).
func (m *Matrix) SortIndices() {
	for i := 0; i < m.Rows; i++ {
		lo, hi := m.Indptr[i], m.Indptr[i+1]
		if hi-lo < 2 {
			continue
		}
		idx := m.Indices[lo:hi]
		dat := m.Data[lo:hi]
		if sort.IntsAreSorted(idx) {
			continue
		}
		order := make([]int, hi-lo)
		for k := range order {
			order[k] = k
		}
		sort.Slice(order, func(a, b int) bool { return idx[order[a]] < idx[order[b]] })
		sortedIdx := make([]int, len(idx))
		sortedDat := make([]complex64, len(dat))
		for k, o := range order {
			sortedIdx[k] = idx[o]
			sortedDat[k] = dat[o]
		}
		copy(idx, sortedIdx)
		copy(dat, sortedDat)
	}
}
