package track

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestIoU_Identity(t *testing.T) {
	boxes := []Box{
		{X1: 0, Y1: 0, X2: 100, Y2: 100},
		{X1: -50, Y1: 10, X2: 30, Y2: 90},
		{X1: 5, Y1: 5, X2: 6, Y2: 6},
	}
	for _, b := range boxes {
		if got := IoU(b, b); !floatEquals(got, 1.0) {
			t.Errorf("IoU(b, b) = %v, want 1.0 for %+v", got, b)
		}
	}
}

func TestIoU_Symmetric(t *testing.T) {
	a := Box{X1: 0, Y1: 0, X2: 100, Y2: 100}
	b := Box{X1: 50, Y1: 20, X2: 150, Y2: 120}

	if IoU(a, b) != IoU(b, a) {
		t.Errorf("IoU not symmetric: %v vs %v", IoU(a, b), IoU(b, a))
	}
}

func TestIoU_Bounds(t *testing.T) {
	tests := []struct {
		name string
		a, b Box
	}{
		{"disjoint", Box{X1: 0, Y1: 0, X2: 10, Y2: 10}, Box{X1: 20, Y1: 20, X2: 30, Y2: 30}},
		{"touching", Box{X1: 0, Y1: 0, X2: 10, Y2: 10}, Box{X1: 10, Y1: 0, X2: 20, Y2: 10}},
		{"contained", Box{X1: 0, Y1: 0, X2: 100, Y2: 100}, Box{X1: 25, Y1: 25, X2: 75, Y2: 75}},
		{"partial", Box{X1: 0, Y1: 0, X2: 100, Y2: 100}, Box{X1: 50, Y1: 50, X2: 150, Y2: 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IoU(tt.a, tt.b)
			if got < 0 || got > 1 {
				t.Errorf("IoU = %v, want within [0, 1]", got)
			}
		})
	}
}

func TestIoU_ZeroUnion(t *testing.T) {
	a := Box{X1: 5, Y1: 5, X2: 5, Y2: 5}
	b := Box{X1: 9, Y1: 9, X2: 9, Y2: 9}

	if got := IoU(a, b); got != 0 {
		t.Errorf("IoU of zero-area boxes = %v, want 0", got)
	}
}

func TestIoU_KnownValue(t *testing.T) {
	// Two 100x100 boxes offset by 50 in x: inter 50*100, union 15000.
	a := Box{X1: 0, Y1: 0, X2: 100, Y2: 100}
	b := Box{X1: 50, Y1: 0, X2: 150, Y2: 100}

	want := 5000.0 / 15000.0
	if got := IoU(a, b); !floatEquals(got, want) {
		t.Errorf("IoU = %v, want %v", got, want)
	}
}

func TestBox_Geometry(t *testing.T) {
	b := Box{X1: 10, Y1: 20, X2: 110, Y2: 70}

	if b.Width() != 100 || b.Height() != 50 {
		t.Errorf("Width/Height = %d/%d, want 100/50", b.Width(), b.Height())
	}
	if b.Area() != 5000 {
		t.Errorf("Area = %d, want 5000", b.Area())
	}
	cx, cy := b.Center()
	if cx != 60 || cy != 45 {
		t.Errorf("Center = (%d, %d), want (60, 45)", cx, cy)
	}
}
