package linop

import "github.com/numerics-forge/linop/backend"

// Adjoint wraps an operator and swaps its forward/adjoint direction. It
// carries no state of its own: evaluating an Adjoint just calls the child's
// Eval with forward flipped (spec.md §4.5).
type Adjoint struct {
	base
	child Operator
}

// NewAdjoint returns the adjoint of child. Adjoining an already-adjointed
// operator unwraps it instead of nesting, so H(H(A)) is A itself rather
// than an Adjoint-of-Adjoint node (spec.md §3, §4.5).
func NewAdjoint(child Operator, opts ...Option) Operator {
	if a, ok := child.(*Adjoint); ok {
		return a.child
	}
	a := &Adjoint{child: child}
	a.be = child.Backend()
	a.name = child.Name()
	for _, o := range opts {
		o(&a.base)
	}
	a.self = a
	return a
}

// Shape implements Operator: an adjoint's shape is its child's, reversed.
func (a *Adjoint) Shape() (int, int) {
	m, n := a.child.Shape()
	return n, m
}

// Kind implements Operator.
func (a *Adjoint) Kind() string { return "Adjoint" }

// Children implements Operator.
func (a *Adjoint) Children() []Operator { return []Operator{a.child} }

// H implements Operator, unwrapping back to the child.
func (a *Adjoint) H() Operator { return a.child }

func (a *Adjoint) evalNode(y, x backend.Array, alpha, beta complex64, forward bool) error {
	return a.child.Eval(y, x, alpha, beta, !forward)
}
