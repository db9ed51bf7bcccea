package linop

import "github.com/numerics-forge/linop/backend"

// BlockDiag is the direct sum of its children: diag(A_0, A_1, ...). Its
// rows and columns are the sum of the children's rows and columns, and
// evaluating it partitions x and y along the feature (row) axis and
// applies each child to its own slice independently (spec.md §4.8).
type BlockDiag struct {
	base
	children []Operator
}

// NewBlockDiag returns the direct sum of children.
func NewBlockDiag(children []Operator, opts ...Option) *BlockDiag {
	if len(children) == 0 {
		panic(Error("linop: NewBlockDiag: at least one child required"))
	}
	b := &BlockDiag{children: append([]Operator(nil), children...)}
	b.be = children[0].Backend()
	for _, o := range opts {
		o(&b.base)
	}
	b.self = b
	return b
}

// Shape implements Operator.
func (b *BlockDiag) Shape() (int, int) {
	var rows, cols int
	for _, c := range b.children {
		m, n := c.Shape()
		rows += m
		cols += n
	}
	return rows, cols
}

// Kind implements Operator.
func (b *BlockDiag) Kind() string { return "BlockDiag" }

// Children implements Operator.
func (b *BlockDiag) Children() []Operator { return b.children }

func (b *BlockDiag) evalNode(y, x backend.Array, alpha, beta complex64, forward bool) error {
	var xOff, yOff int
	for _, c := range b.children {
		m, n := c.Shape()
		inRows, outRows := n, m
		if !forward {
			inRows, outRows = m, n
		}
		xs := x.Row(xOff, xOff+inRows)
		ys := y.Row(yOff, yOff+outRows)
		if err := c.Eval(ys, xs, alpha, beta, forward); err != nil {
			return err
		}
		xOff += inRows
		yOff += outRows
	}
	return nil
}
