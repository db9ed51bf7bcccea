package linop

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/numerics-forge/linop/backend/refblas"
)

func TestDenseMatrixForward(t *testing.T) {
	be := refblas.New()
	// A = [[1,0],[0,2]] (column-major)
	a := NewDenseMatrix(be, "A", 2, 2, []complex64{1, 0, 0, 2})

	x := be.CopyArray(2, 1, []complex64{3, 4})
	y := be.ZeroArray(2, 1)
	if err := a.Eval(y, x, 1, 0, true); err != nil {
		t.Fatal(err)
	}
	want := []complex64{3, 8}
	if diff := cmp.Diff(want, y.ToHost()); diff != "" {
		t.Errorf("Eval forward mismatch (-want +got):\n%s", diff)
	}
}

func TestDenseMatrixAdjoint(t *testing.T) {
	be := refblas.New()
	// A = [[0, 1], [0, 0]] (2x2, column-major: col0=[0,0] col1=[1,0])
	a := NewDenseMatrix(be, "A", 2, 2, []complex64{0, 0, 1, 0})

	x := be.CopyArray(2, 1, []complex64{5, 7})
	y := be.ZeroArray(2, 1)
	if err := a.Eval(y, x, 1, 0, false); err != nil {
		t.Fatal(err)
	}
	// A^H = conj(A)^T = [[0,0],[1,0]]; A^H * x = [0, 5]
	want := []complex64{0, 5}
	if diff := cmp.Diff(want, y.ToHost()); diff != "" {
		t.Errorf("Eval adjoint mismatch (-want +got):\n%s", diff)
	}
}

func TestDenseMatrixAlphaBetaContract(t *testing.T) {
	be := refblas.New()
	a := NewDenseMatrix(be, "A", 1, 1, []complex64{2})
	x := be.CopyArray(1, 1, []complex64{3})
	y := be.CopyArray(1, 1, []complex64{10})
	if err := a.Eval(y, x, 2, 5, true); err != nil {
		t.Fatal(err)
	}
	// y <- alpha*A*x + beta*y = 2*2*3 + 5*10 = 62
	want := []complex64{62}
	if diff := cmp.Diff(want, y.ToHost()); diff != "" {
		t.Errorf("alpha/beta mismatch (-want +got):\n%s", diff)
	}
}

func TestDenseMatrixConstructorPanicsOnBadShape(t *testing.T) {
	be := refblas.New()
	defer func() {
		if recover() == nil {
			t.Fatal("NewDenseMatrix with mismatched data length did not panic")
		}
	}()
	NewDenseMatrix(be, "A", 2, 2, []complex64{1, 2, 3})
}

func TestDenseMatrixDeviceCaching(t *testing.T) {
	be := refblas.New()
	a := NewDenseMatrix(be, "A", 1, 1, []complex64{1})
	d1 := a.deviceMatrix()
	d2 := a.deviceMatrix()
	if &d1.Data[0] != &d2.Data[0] {
		t.Error("deviceMatrix() re-uploaded instead of returning the cached array")
	}
}
