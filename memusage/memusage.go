// Package memusage estimates the host and device memory an operator tree
// needs to evaluate, without actually evaluating it (spec.md §4.10),
// grounded on slo/analyses.py's Memusage visitor.
package memusage

import (
	"log"

	"github.com/numerics-forge/linop"
)

const mib = 1024 * 1024

// Estimate returns (dataMiB, intermediateMiB, scratchMiB): the size of
// every leaf's resident data (deduplicated by node identity, so a leaf
// shared by two subtrees is only counted once), the peak transient working
// set of an Eval (each node's own buffer plus the largest working set among
// its children, summed down the tree), and the CG-style
// scratch space (four vectors shaped like the root's input) a typical
// caller budgets alongside it.
func Estimate(root linop.Operator, ncols int) (dataMiB, intermediateMiB, scratchMiB float64) {
	v := &visitor{seen: make(map[linop.Operator]bool)}
	v.visit(root)

	var dataBytes int
	for _, b := range v.dataItems {
		dataBytes += b
	}

	intermediateBytes := intermediateNbytes(root, ncols)

	_, n := root.Shape()
	scratchBytes := n * ncols * 8 * 4

	return float64(dataBytes) / mib, float64(intermediateBytes) / mib, float64(scratchBytes) / mib
}

// visitor walks the tree once, recording each distinct leaf's resident
// byte count keyed by its identity (the Operator interface value itself,
// not a structural key), matching slo/analyses.py's dict keyed by id(node).
type visitor struct {
	seen      map[linop.Operator]bool
	dataItems map[linop.Operator]int
}

func (v *visitor) visit(op linop.Operator) {
	if v.seen[op] {
		return
	}
	v.seen[op] = true

	switch n := op.(type) {
	case *linop.DenseMatrix:
		v.record(op, n.Bytes())
	case *linop.SpMatrix:
		v.record(op, n.Bytes())
	default:
		for _, c := range op.Children() {
			v.visit(c)
		}
	}
}

func (v *visitor) record(op linop.Operator, n int) {
	if v.dataItems == nil {
		v.dataItems = make(map[linop.Operator]int)
	}
	v.dataItems[op] = n
}

// intermediateNbytes mirrors slo/analyses.py's Memusage.intermediate_nbytes:
// a type switch that adds UnscaledFFT's workspace and Product's temporary,
// and for KronI passes c*ncols columns down without adding bytes of its
// own, plus the max over children of the same computation applied
// recursively with whatever shape that node passes down.
func intermediateNbytes(op linop.Operator, ncols int) int {
	if b := op.Batch(); b > 0 && b < ncols {
		ncols = b
	}

	var nbytes int
	childCols := ncols

	switch n := op.(type) {
	case *linop.UnscaledFFT:
		nbytes += n.WorkspaceBytes(ncols)
	case *linop.Product:
		children := n.Children()
		left, right := children[0], children[1]
		rm, _ := right.Shape()
		nbytes += rm * ncols * 8

		leftChild := intermediateNbytes(left, ncols)
		rightChild := intermediateNbytes(right, ncols)
		if leftChild > rightChild {
			return nbytes + leftChild
		}
		return nbytes + rightChild
	case *linop.KronI:
		c := n.C()
		childCols = c * ncols
	}

	children := op.Children()
	if len(children) == 0 {
		return nbytes
	}
	max := 0
	for _, c := range children {
		if got := intermediateNbytes(c, childCols); got > max {
			max = got
		}
	}
	return nbytes + max
}

// warnUnsupported logs a warning line for a leaf kind memusage doesn't know how to
// size, matching slo/analyses.py's Memusage.estimate_spm_nbytes fallback
// for sparse formats other than CSR. linop only ever constructs CSR
// SpMatrix leaves, so this path is unreachable today; it's kept so a
// future additional leaf kind fails loudly instead of silently under-
// counting memory.
func warnUnsupported(op linop.Operator) {
	log.Printf("memusage: operator kind %q unsupported, excluded from data byte estimate", op.Kind())
}
