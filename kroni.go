package linop

import "github.com/numerics-forge/linop/backend"

// KronI is the Kronecker product of an order-c identity with child:
// I_c ⊗ child. Evaluating it applies child independently and identically
// to c stacked copies of each input column (spec.md §4.7).
//
// Unlike NumPy, which reinterprets a contiguous buffer's shape in place,
// backend.Array supports padded (Leading > Rows) sub-views, so reshaping
// in place would be unsound whenever x or y is such a view. KronI instead
// round-trips through a densely packed host copy via Array.ToHost and
// Array.CopyFrom.
type KronI struct {
	base
	c     int
	child Operator
}

// NewKronI returns I_c ⊗ child.
func NewKronI(c int, child Operator, opts ...Option) *KronI {
	if c <= 0 {
		panic(Error("linop: NewKronI: c must be positive"))
	}
	k := &KronI{c: c, child: child}
	k.be = child.Backend()
	k.name = child.Name()
	for _, o := range opts {
		o(&k.base)
	}
	k.self = k
	return k
}

// Shape implements Operator.
func (k *KronI) Shape() (int, int) {
	m, n := k.child.Shape()
	return k.c * m, k.c * n
}

// Kind implements Operator.
func (k *KronI) Kind() string { return "KronI" }

// Children implements Operator.
func (k *KronI) Children() []Operator { return []Operator{k.child} }

// C returns the Kronecker factor's order (the "I_c" in I_c ⊗ child), for
// memusage's intermediate-shape accounting (spec.md §4.10).
func (k *KronI) C() int { return k.c }

func (k *KronI) evalNode(y, x backend.Array, alpha, beta complex64, forward bool) error {
	cm, cn := k.child.Shape()

	// Reinterpret x's (c*rowsIn, ncols) columns as c*ncols columns of
	// rowsIn each, run the child once over the whole batch, then scatter
	// back into y's native (c*rowsOut, ncols) shape.
	rowsIn, rowsOut := cn, cm
	if !forward {
		rowsIn, rowsOut = cm, cn
	}

	xHost := x.ToHost()
	xr := backend.NewArray(rowsIn, k.c*x.Cols, xHost)

	yHost := make([]complex64, rowsOut*k.c*y.Cols)
	yr := backend.NewArray(rowsOut, k.c*y.Cols, yHost)
	if beta != 0 {
		copy(yHost, y.ToHost())
	}

	if err := k.child.Eval(yr, xr, alpha, beta, forward); err != nil {
		return err
	}
	y.CopyFrom(yr.Data)
	return nil
}
