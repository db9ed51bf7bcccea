// Package linop implements a compositional algebra of linear operators over
// complex64 vectors and matrices, executed by a pluggable Backend (dense
// BLAS, sparse CSR multiply, batched 3-D FFT — see package backend).
//
// A tree built from DenseMatrix, SpMatrix and UnscaledFFT leaves, combined
// by Product (composition), BlockDiag (direct sum), KronI (Kronecker with
// identity) and VStack/HStack (concatenation), evaluates
//
//	y <- alpha*A*x + beta*y   (or its adjoint)
//
// via Operator.Eval without ever materializing the composite matrix. The
// target workload is iterative solvers (conjugate gradient and relatives)
// over large, structured, never-explicitly-stored operators.
//
// Operator trees are plain values with no registration or global state, so
// an external rewriter (a separate "Optimize" pass pipeline, out of scope
// for this package) can walk and rebuild a tree freely: nothing in linop
// tracks which trees exist, and nothing here depends on Optimize existing.
package linop
