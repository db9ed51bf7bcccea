package linop

import "log"

// MulDense applies op to a densely packed, column-major host slice of
// length rows*ncols (rows = op's input width), uploading it, evaluating,
// and downloading the result (spec.md, D.2: a convenience mirroring
// slo/operators.py's Operator.__mul__(ndarray) slow path). It logs once
// per call, like the original, since round-tripping through the host on
// every multiply defeats the point of the backend abstraction and is
// meant for scripts and tests, not hot loops.
func MulDense(op Operator, x []complex64) ([]complex64, error) {
	log.Printf("linop: MulDense: using slow host round-trip evaluation interface for %q", op.Name())

	m, n := op.Shape()
	if len(x)%n != 0 {
		panic(Error("linop: MulDense: input length is not a multiple of operator width"))
	}
	ncols := len(x) / n

	be := op.Backend()
	xd := be.CopyArray(n, ncols, x)
	yd := be.ZeroArray(m, ncols)

	if err := op.Eval(yd, xd, 1, 0, true); err != nil {
		return nil, err
	}
	return yd.ToHost(), nil
}
