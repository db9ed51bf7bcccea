package linop

import "github.com/numerics-forge/linop/backend"

// Product is the composition of two operators, left*right, evaluated as
// left(right(x)) without ever materializing either operand
// (spec.md §4.6). left.Shape() columns must equal right.Shape() rows.
type Product struct {
	base
	left, right Operator
}

// NewProduct composes left*right. It panics if their shapes don't chain.
// The node's name is always "left.Name()*right.Name()", overriding any
// name supplied via options, matching slo/operators.py's Product.__init__
// which unconditionally derives its own name this way.
func NewProduct(left, right Operator, opts ...Option) *Product {
	_, lc := left.Shape()
	rr, _ := right.Shape()
	if lc != rr {
		panic(shapeMismatch("Product", left, right))
	}
	p := &Product{left: left, right: right}
	p.be = left.Backend()
	for _, o := range opts {
		o(&p.base)
	}
	p.name = left.Name() + "*" + right.Name()
	p.self = p
	return p
}

// Shape implements Operator.
func (p *Product) Shape() (int, int) {
	m, _ := p.left.Shape()
	_, n := p.right.Shape()
	return m, n
}

// Kind implements Operator.
func (p *Product) Kind() string { return "Product" }

// Children implements Operator, in operand order (left, then right). A
// forward Eval runs right before left; an adjoint Eval runs left first.
func (p *Product) Children() []Operator { return []Operator{p.left, p.right} }

// intermediateShape returns the shape of the scratch buffer Eval needs to
// hold the result of the inner operator, for a batch of ncols columns. The inner
// operator is right for a forward eval, left for an adjoint eval.
func (p *Product) intermediateShape(ncols int, forward bool) (int, int) {
	if forward {
		m, _ := p.right.Shape()
		return m, ncols
	}
	_, n := p.left.Shape()
	return n, ncols
}

func (p *Product) evalNode(y, x backend.Array, alpha, beta complex64, forward bool) error {
	tRows, tCols := p.intermediateShape(x.Cols, forward)
	tmp := p.be.ZeroArray(tRows, tCols)

	if forward {
		// tmp <- alpha*right*x + 0; y <- 1*left*tmp + beta*y
		if err := p.right.Eval(tmp, x, alpha, 0, true); err != nil {
			return err
		}
		return p.left.Eval(y, tmp, 1, beta, true)
	}
	// adjoint: tmp <- alpha*left^H*x + 0; y <- 1*right^H*tmp + beta*y
	if err := p.left.Eval(tmp, x, alpha, 0, false); err != nil {
		return err
	}
	return p.right.Eval(y, tmp, 1, beta, false)
}
