package linop

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/numerics-forge/linop/backend/refblas"
)

func TestProductShapeAndName(t *testing.T) {
	be := refblas.New()
	l := NewDenseMatrix(be, "L", 2, 3, make([]complex64, 6))
	r := NewDenseMatrix(be, "R", 3, 4, make([]complex64, 12))
	p := NewProduct(l, r)

	m, n := p.Shape()
	if m != 2 || n != 4 {
		t.Errorf("Shape() = (%d, %d), want (2, 4)", m, n)
	}
	if p.Name() != "L*R" {
		t.Errorf("Name() = %q, want %q", p.Name(), "L*R")
	}
}

func TestProductConstructorPanicsOnMismatchedShapes(t *testing.T) {
	be := refblas.New()
	l := NewDenseMatrix(be, "L", 2, 3, make([]complex64, 6))
	r := NewDenseMatrix(be, "R", 4, 4, make([]complex64, 16))
	defer func() {
		if recover() == nil {
			t.Fatal("NewProduct with mismatched shapes did not panic")
		}
	}()
	NewProduct(l, r)
}

func TestProductEvalForward(t *testing.T) {
	be := refblas.New()
	// L = [[2,0],[0,1]], R = [[1,0],[0,3]]; L*R*x should equal L applied to R applied to x.
	l := NewDenseMatrix(be, "L", 2, 2, []complex64{2, 0, 0, 1})
	r := NewDenseMatrix(be, "R", 2, 2, []complex64{1, 0, 0, 3})
	p := NewProduct(l, r)

	x := be.CopyArray(2, 1, []complex64{5, 7})
	y := be.ZeroArray(2, 1)
	if err := p.Eval(y, x, 1, 0, true); err != nil {
		t.Fatal(err)
	}
	// R*x = [5, 21]; L*(R*x) = [10, 21]
	want := []complex64{10, 21}
	if diff := cmp.Diff(want, y.ToHost()); diff != "" {
		t.Errorf("Eval forward mismatch (-want +got):\n%s", diff)
	}
}

func TestProductEvalAdjointOrderReversed(t *testing.T) {
	be := refblas.New()
	l := NewDenseMatrix(be, "L", 2, 2, []complex64{2, 0, 0, 1})
	r := NewDenseMatrix(be, "R", 2, 2, []complex64{1, 0, 0, 3})
	p := NewProduct(l, r)

	x := be.CopyArray(2, 1, []complex64{5, 7})
	y := be.ZeroArray(2, 1)
	if err := p.Eval(y, x, 1, 0, false); err != nil {
		t.Fatal(err)
	}
	// (L*R)^H = R^H * L^H; both diagonal/real here so H is identity.
	// L^H*x = [10, 7]; R^H*(L^H*x) = [10, 21]
	want := []complex64{10, 21}
	if diff := cmp.Diff(want, y.ToHost()); diff != "" {
		t.Errorf("Eval adjoint mismatch (-want +got):\n%s", diff)
	}
}

// Regression: a non-trivial alpha must route to the inner (scalar-tolerant)
// child, never to an UnscaledFFT outer child, which strictly rejects
// alpha!=1 or beta!=0 (spec.md §4.4, §4.6). This is exactly the
// Product(UnscaledFFT, SpMatrix) shape named in spec.md §8 scenario 6.
func TestProductEvalForwardRoutesScalarsToInnerChildNotFFT(t *testing.T) {
	be := refblas.New()
	f := NewUnscaledFFT(be, "F", [3]int{2, 1, 1})
	s := NewSpMatrix(be, "S", diagCSR([]complex64{1, 2}))
	p := NewProduct(f, s)

	x := be.CopyArray(2, 1, []complex64{1, 0})
	y := be.ZeroArray(2, 1)
	if err := p.Eval(y, x, 2, 0, true); err != nil {
		var unsupported *UnsupportedScalarError
		if errors.As(err, &unsupported) {
			t.Fatalf("Eval forward misrouted alpha=2 to UnscaledFFT instead of SpMatrix: %v", err)
		}
		t.Fatal(err)
	}
}

func TestProductEvalAdjointRoutesScalarsToInnerChildNotFFT(t *testing.T) {
	be := refblas.New()
	f := NewUnscaledFFT(be, "F", [3]int{2, 1, 1})
	s := NewSpMatrix(be, "S", diagCSR([]complex64{1, 2}))
	p := NewProduct(s, f)

	x := be.CopyArray(2, 1, []complex64{1, 0})
	y := be.ZeroArray(2, 1)
	if err := p.Eval(y, x, 2, 0, false); err != nil {
		var unsupported *UnsupportedScalarError
		if errors.As(err, &unsupported) {
			t.Fatalf("Eval adjoint misrouted alpha=2 to UnscaledFFT instead of SpMatrix: %v", err)
		}
		t.Fatal(err)
	}
}
