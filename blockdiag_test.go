package linop

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/numerics-forge/linop/backend/refblas"
)

func TestBlockDiagShape(t *testing.T) {
	be := refblas.New()
	a := NewDenseMatrix(be, "A", 2, 3, make([]complex64, 6))
	b := NewDenseMatrix(be, "B", 4, 1, make([]complex64, 4))
	bd := NewBlockDiag([]Operator{a, b})
	m, n := bd.Shape()
	if m != 6 || n != 4 {
		t.Errorf("Shape() = (%d, %d), want (6, 4)", m, n)
	}
}

func TestBlockDiagEvalPartitionsIndependently(t *testing.T) {
	be := refblas.New()
	a := NewDenseMatrix(be, "A", 1, 1, []complex64{2})
	b := NewDenseMatrix(be, "B", 1, 1, []complex64{3})
	bd := NewBlockDiag([]Operator{a, b})

	x := be.CopyArray(2, 1, []complex64{5, 7})
	y := be.ZeroArray(2, 1)
	if err := bd.Eval(y, x, 1, 0, true); err != nil {
		t.Fatal(err)
	}
	want := []complex64{10, 21}
	if diff := cmp.Diff(want, y.ToHost()); diff != "" {
		t.Errorf("Eval mismatch (-want +got):\n%s", diff)
	}
}
