package linop

import "fmt"

// Error is a sentinel error type for conditions detected at tree
// construction time (shape and dtype invariants), mirroring the teacher's
// mat64.Error convention of a plain string-based error recovered with
// Maybe-style wrappers. Construction-time violations panic with an Error
// rather than returning one, since a malformed tree is a programming error,
// not a recoverable runtime condition (spec.md §7: "fatal, surfaced at
// build time").
type Error string

func (e Error) Error() string { return string(e) }

func shapeMismatch(op string, left, right Operator) Error {
	lm, ln := left.Shape()
	rm, rn := right.Shape()
	return Error(fmt.Sprintf("linop: %s: mismatched shapes: %s %v (%q) vs %s %v (%q)",
		op, left.Name(), [2]int{lm, ln}, left.Kind(), right.Name(), [2]int{rm, rn}, right.Kind()))
}

// DimError is returned by Eval when the runtime shapes of x and y don't
// match the operator's shape for the requested direction (spec.md §7:
// "Runtime dimension mismatch at eval").
type DimError struct {
	YShape, Shape, XShape [2]int
	Forward               bool
}

func (e *DimError) Error() string {
	return fmt.Sprintf("linop: dimension mismatch: attempting y%v = A%v * x%v (forward=%v)",
		e.YShape, e.Shape, e.XShape, e.Forward)
}

// UnsupportedScalarError is returned by UnscaledFFT.Eval when called with
// alpha != 1 or beta != 0 (spec.md §4.4, §7: "Unsupported scalar").
type UnsupportedScalarError struct {
	Alpha, Beta complex64
}

func (e *UnsupportedScalarError) Error() string {
	return fmt.Sprintf("linop: UnscaledFFT: unsupported scalars alpha=%v beta=%v (only alpha=1, beta=0 supported)",
		e.Alpha, e.Beta)
}
