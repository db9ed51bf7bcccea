package linop

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/numerics-forge/linop/backend/refblas"
)

func TestUnscaledFFTShape(t *testing.T) {
	be := refblas.New()
	f := NewUnscaledFFT(be, "F", [3]int{2, 3, 4})
	m, n := f.Shape()
	if m != 24 || n != 24 {
		t.Errorf("Shape() = (%d, %d), want (24, 24)", m, n)
	}
}

func TestUnscaledFFTUnscaledRoundTrip(t *testing.T) {
	be := refblas.New()
	f := NewUnscaledFFT(be, "F", [3]int{2, 1, 1})

	x := be.CopyArray(2, 1, []complex64{1, 0})
	y := be.ZeroArray(2, 1)
	if err := f.Eval(y, x, 1, 0, true); err != nil {
		t.Fatal(err)
	}

	back := be.ZeroArray(2, 1)
	if err := f.Eval(back, y, 1, 0, false); err != nil {
		t.Fatal(err)
	}
	want := []complex64{2, 0} // unscaled inverse: N*x, not x
	if diff := cmp.Diff(want, back.ToHost()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnscaledFFTRejectsNonTrivialScalars(t *testing.T) {
	be := refblas.New()
	f := NewUnscaledFFT(be, "F", [3]int{2, 1, 1})
	x := be.ZeroArray(2, 1)
	y := be.ZeroArray(2, 1)

	if err := f.Eval(y, x, 2, 0, true); err == nil {
		t.Error("expected an error for alpha != 1")
	}
	if err := f.Eval(y, x, 1, 1, true); err == nil {
		t.Error("expected an error for beta != 0")
	}
}

func TestUnscaledFFTConstructorPanicsOnBadShape(t *testing.T) {
	be := refblas.New()
	defer func() {
		if recover() == nil {
			t.Fatal("NewUnscaledFFT with non-positive shape did not panic")
		}
	}()
	NewUnscaledFFT(be, "F", [3]int{0, 1, 1})
}
