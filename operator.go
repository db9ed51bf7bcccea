package linop

import "github.com/numerics-forge/linop/backend"

// DType names the element type carried by an Operator. complex64 is the
// only supported value (spec.md §1: "No real-valued dtype support"); it
// exists as a named type, rather than being implicit, so the tree's dtype
// invariant (spec.md §3) is something every node can report, even though
// Go's own type system already makes cross-dtype trees unconstructible.
type DType int

// Complex64 is the sole supported DType.
const Complex64 DType = 0

func (DType) String() string { return "complex64" }

// Operator is a linear map A: C^N -> C^M represented as a tree node. Every
// node carries a backend reference (shared, not owned), a diagnostic name,
// an optional column batch cap, and a (rows, cols) shape (spec.md §3).
type Operator interface {
	// Backend returns the numerical backend this operator (and its whole
	// tree) evaluates through.
	Backend() backend.Backend
	// Name is a diagnostic label; Dump falls back to "noname" when empty.
	Name() string
	// Shape returns (M, N) such that the operator maps C^N -> C^M.
	Shape() (rows, cols int)
	// Dtype is always Complex64.
	Dtype() DType
	// Batch is the column cap Eval applies per backend call, or 0 for
	// unbounded (process all columns in one call).
	Batch() int
	// Children lists this node's operands, in operand order; empty for
	// leaves.
	Children() []Operator
	// Kind names the concrete node variant ("DenseMatrix", "Product", …)
	// for Dump and for external tooling that type-switches on it.
	Kind() string

	// Eval computes y <- alpha*op(x) + beta*y, where op is A if forward,
	// A^H otherwise (spec.md §4.1).
	Eval(y, x backend.Array, alpha, beta complex64, forward bool) error
	// H returns the adjoint of this operator. Adjoining an adjoint
	// returns the original operator (spec.md §3, §4.5).
	H() Operator
	// Mul returns Product(this, other).
	Mul(other Operator) *Product
}

// evaler is the internal counterpart to Operator: every concrete node type
// implements evalNode, the per-node "_eval" that Eval's shared driver
// invokes after checking shapes/dtypes and slicing by Batch.
type evaler interface {
	Operator
	evalNode(y, x backend.Array, alpha, beta complex64, forward bool) error
}

// Option configures a node at construction time.
type Option func(*base)

// WithBatch caps the number of columns a node's backend calls process at
// once (spec.md §3 "batch", §4.1 "Column batching").
func WithBatch(n int) Option {
	return func(b *base) { b.batchSize = n }
}

// base implements the Operator methods that are identical for every node
// variant. Concrete types embed base and must additionally implement
// Shape, Kind, evalNode, and (for composites) Children. base.self must be
// set to the embedding type's own pointer immediately after construction
// so that Eval, H and Mul can dispatch back through the full Operator
// (Go has no virtual base-class dispatch, so this back-reference plays
// that role).
type base struct {
	be        backend.Backend
	name      string
	batchSize int
	self      Operator
}

func (b *base) Backend() backend.Backend { return b.be }
func (b *base) Name() string             { return b.name }
func (b *base) Batch() int               { return b.batchSize }
func (b *base) Dtype() DType             { return Complex64 }
func (b *base) Children() []Operator     { return nil }

func (b *base) H() Operator           { return NewAdjoint(b.self) }
func (b *base) Mul(other Operator) *Product { return NewProduct(b.self, other) }

func (b *base) Eval(y, x backend.Array, alpha, beta complex64, forward bool) error {
	ev, ok := b.self.(evaler)
	if !ok {
		panic("linop: operator constructed without wiring its self-reference")
	}
	return evalDriver(ev, y, x, alpha, beta, forward)
}

// evalDriver implements spec.md §4.1's shared precondition check and
// column-batching loop, common to every operator.
func evalDriver(op evaler, y, x backend.Array, alpha, beta complex64, forward bool) error {
	m, n := op.Shape()
	wantM, wantN := m, n
	if !forward {
		wantM, wantN = n, m
	}
	if x.Rows != wantN || y.Rows != wantM || x.Cols != y.Cols {
		return &DimError{
			YShape:  [2]int{y.Rows, y.Cols},
			Shape:   [2]int{m, n},
			XShape:  [2]int{x.Rows, x.Cols},
			Forward: forward,
		}
	}

	batch := op.Batch()
	if batch <= 0 {
		batch = x.Cols
	}
	if batch == 0 {
		return nil
	}
	for b := 0; b < x.Cols; b += batch {
		hi := b + batch
		if hi > x.Cols {
			hi = x.Cols
		}
		xs := x.Col(b, hi)
		ys := y.Col(b, hi)
		if err := op.evalNode(ys, xs, alpha, beta, forward); err != nil {
			return err
		}
	}
	return nil
}
