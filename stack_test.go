package linop

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/numerics-forge/linop/backend/refblas"
)

func TestVStackShapeAndEval(t *testing.T) {
	be := refblas.New()
	a := NewDenseMatrix(be, "A", 1, 2, []complex64{1, 0})
	b := NewDenseMatrix(be, "B", 1, 2, []complex64{0, 1})
	v := NewVStack([]Operator{a, b})

	m, n := v.Shape()
	if m != 2 || n != 2 {
		t.Errorf("Shape() = (%d, %d), want (2, 2)", m, n)
	}

	x := be.CopyArray(2, 1, []complex64{5, 7})
	y := be.ZeroArray(2, 1)
	if err := v.Eval(y, x, 1, 0, true); err != nil {
		t.Fatal(err)
	}
	want := []complex64{5, 7}
	if diff := cmp.Diff(want, y.ToHost()); diff != "" {
		t.Errorf("Eval forward mismatch (-want +got):\n%s", diff)
	}
}

func TestVStackAdjointAccumulates(t *testing.T) {
	be := refblas.New()
	a := NewDenseMatrix(be, "A", 1, 1, []complex64{1})
	b := NewDenseMatrix(be, "B", 1, 1, []complex64{1})
	v := NewVStack([]Operator{a, b})

	x := be.CopyArray(2, 1, []complex64{3, 4})
	y := be.ZeroArray(1, 1)
	if err := v.Eval(y, x, 1, 0, false); err != nil {
		t.Fatal(err)
	}
	// adjoint accumulates both children's contribution into the shared y
	want := []complex64{7}
	if diff := cmp.Diff(want, y.ToHost()); diff != "" {
		t.Errorf("Eval adjoint mismatch (-want +got):\n%s", diff)
	}
}

func TestVStackConstructorPanicsOnMismatchedWidths(t *testing.T) {
	be := refblas.New()
	a := NewDenseMatrix(be, "A", 1, 2, make([]complex64, 2))
	b := NewDenseMatrix(be, "B", 1, 3, make([]complex64, 3))
	defer func() {
		if recover() == nil {
			t.Fatal("NewVStack with mismatched widths did not panic")
		}
	}()
	NewVStack([]Operator{a, b})
}

func TestHStackShapeAndEvalAdjoint(t *testing.T) {
	be := refblas.New()
	a := NewDenseMatrix(be, "A", 2, 1, []complex64{1, 0})
	b := NewDenseMatrix(be, "B", 2, 1, []complex64{0, 1})
	h := NewHStack([]Operator{a, b})

	m, n := h.Shape()
	if m != 2 || n != 2 {
		t.Errorf("Shape() = (%d, %d), want (2, 2)", m, n)
	}

	x := be.CopyArray(2, 1, []complex64{5, 7})
	y := be.ZeroArray(2, 1)
	if err := h.Eval(y, x, 1, 0, false); err != nil {
		t.Fatal(err)
	}
	want := []complex64{5, 7}
	if diff := cmp.Diff(want, y.ToHost()); diff != "" {
		t.Errorf("Eval adjoint mismatch (-want +got):\n%s", diff)
	}
}

func TestHStackForwardAccumulates(t *testing.T) {
	be := refblas.New()
	a := NewDenseMatrix(be, "A", 1, 1, []complex64{1})
	b := NewDenseMatrix(be, "B", 1, 1, []complex64{1})
	h := NewHStack([]Operator{a, b})

	x := be.CopyArray(2, 1, []complex64{3, 4})
	y := be.ZeroArray(1, 1)
	if err := h.Eval(y, x, 1, 0, true); err != nil {
		t.Fatal(err)
	}
	want := []complex64{7}
	if diff := cmp.Diff(want, y.ToHost()); diff != "" {
		t.Errorf("Eval forward mismatch (-want +got):\n%s", diff)
	}
}

func TestHStackConstructorPanicsOnMismatchedHeights(t *testing.T) {
	be := refblas.New()
	a := NewDenseMatrix(be, "A", 2, 1, make([]complex64, 2))
	b := NewDenseMatrix(be, "B", 3, 1, make([]complex64, 3))
	defer func() {
		if recover() == nil {
			t.Fatal("NewHStack with mismatched heights did not panic")
		}
	}()
	NewHStack([]Operator{a, b})
}
