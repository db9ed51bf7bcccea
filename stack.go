package linop

import "github.com/numerics-forge/linop/backend"

// VStack concatenates children row-wise: all children must share the same
// width. Forward, each child writes to its own row slice of y independently;
// adjoint, every child reads its own row slice of x and all of them
// accumulate into the same (shared) y (spec.md §4.9).
type VStack struct {
	base
	children []Operator
}

// NewVStack vertically stacks children, which must all have equal column
// counts.
func NewVStack(children []Operator, opts ...Option) *VStack {
	if len(children) == 0 {
		panic(Error("linop: NewVStack: at least one child required"))
	}
	_, w0 := children[0].Shape()
	for _, c := range children[1:] {
		if _, w := c.Shape(); w != w0 {
			panic(shapeMismatch("VStack", children[0], c))
		}
	}
	v := &VStack{children: append([]Operator(nil), children...)}
	v.be = children[0].Backend()
	for _, o := range opts {
		o(&v.base)
	}
	v.self = v
	return v
}

// Shape implements Operator.
func (v *VStack) Shape() (int, int) {
	var rows int
	_, cols := v.children[0].Shape()
	for _, c := range v.children {
		m, _ := c.Shape()
		rows += m
	}
	return rows, cols
}

// Kind implements Operator.
func (v *VStack) Kind() string { return "VStack" }

// Children implements Operator.
func (v *VStack) Children() []Operator { return v.children }

func (v *VStack) evalNode(y, x backend.Array, alpha, beta complex64, forward bool) error {
	if forward {
		var rOff int
		for _, c := range v.children {
			m, _ := c.Shape()
			ys := y.Row(rOff, rOff+m)
			if err := c.Eval(ys, x, alpha, beta, true); err != nil {
				return err
			}
			rOff += m
		}
		return nil
	}

	v.be.Scale(y, beta)
	var rOff int
	for _, c := range v.children {
		m, _ := c.Shape()
		xs := x.Row(rOff, rOff+m)
		if err := c.Eval(y, xs, alpha, 1, false); err != nil {
			return err
		}
		rOff += m
	}
	return nil
}

// HStack concatenates children column-wise (in the feature axis): all
// children must share the same height. Forward, every child reads its own
// row slice of x and all of them accumulate into the same (shared) y;
// adjoint, each child writes to its own row slice of y independently
// (spec.md §4.9). It's the mirror image of VStack.
type HStack struct {
	base
	children []Operator
}

// NewHStack horizontally stacks children, which must all have equal row
// counts.
func NewHStack(children []Operator, opts ...Option) *HStack {
	if len(children) == 0 {
		panic(Error("linop: NewHStack: at least one child required"))
	}
	h0, _ := children[0].Shape()
	for _, c := range children[1:] {
		if h, _ := c.Shape(); h != h0 {
			panic(shapeMismatch("HStack", children[0], c))
		}
	}
	h := &HStack{children: append([]Operator(nil), children...)}
	h.be = children[0].Backend()
	for _, o := range opts {
		o(&h.base)
	}
	h.self = h
	return h
}

// Shape implements Operator.
func (h *HStack) Shape() (int, int) {
	rows, _ := h.children[0].Shape()
	var cols int
	for _, c := range h.children {
		_, n := c.Shape()
		cols += n
	}
	return rows, cols
}

// Kind implements Operator.
func (h *HStack) Kind() string { return "HStack" }

// Children implements Operator.
func (h *HStack) Children() []Operator { return h.children }

func (h *HStack) evalNode(y, x backend.Array, alpha, beta complex64, forward bool) error {
	if forward {
		h.be.Scale(y, beta)
		var cOff int
		for _, c := range h.children {
			_, n := c.Shape()
			xs := x.Row(cOff, cOff+n)
			if err := c.Eval(y, xs, alpha, 1, true); err != nil {
				return err
			}
			cOff += n
		}
		return nil
	}

	var cOff int
	for _, c := range h.children {
		_, n := c.Shape()
		ys := y.Row(cOff, cOff+n)
		if err := c.Eval(ys, x, alpha, beta, false); err != nil {
			return err
		}
		cOff += n
	}
	return nil
}
