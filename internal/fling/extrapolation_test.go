// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"testing"
	"time"
)

func TestDecomposeQR(t *testing.T) {
	A := &matrix{
		rows: 3, cols: 3,
		data: []float32{
			12, 6, -4,
			-51, 167, 24,
			4, -68, -41,
		},
	}
	Q, Rt, ok := decomposeQR(A)
	if !ok {
		t.Fatal("decomposeQR failed")
	}
	R := Rt.transpose()
	QR := Q.mul(R)
	if !A.approxEqual(QR) {
		t.Log("A\n", A)
		t.Log("Q\n", Q)
		t.Log("R\n", R)
		t.Log("QR\n", QR)
		t.Fatal("Q*R not approximately equal to A")
	}
}

func TestFit(t *testing.T) {
	X := []float32{-1, 0, 1}
	Y := []float32{2, 0, 2}

	got, ok := polyFit(X, Y)
	if !ok {
		t.Fatal("polyFit failed")
	}
	want := coefficients{0, 0, 2}
	if !got.approxEqual(want) {
		t.Fatalf("polyFit: got %v want %v", got, want)
	}
}

func TestEstimateConstantVelocity(t *testing.T) {
	var e Extrapolation
	// 100 units per second, sampled every 10ms.
	for i := 0; i < 8; i++ {
		ts := time.Duration(i) * 10 * time.Millisecond
		e.Sample(ts, float32(i))
	}
	est := e.Estimate()
	if d := est.Velocity - 100; d < -0.5 || d > 0.5 {
		t.Errorf("velocity = %v, want 100", est.Velocity)
	}
}

func TestEstimateStaleSamples(t *testing.T) {
	var e Extrapolation
	e.Sample(0, 0)
	e.Sample(10*time.Millisecond, 10)
	// Too long a pause for the old samples to count.
	e.Sample(time.Second, 10)
	if est := e.Estimate(); est != (Estimate{}) {
		t.Errorf("estimate = %+v, want zero", est)
	}
}

func TestAnimation(t *testing.T) {
	var a Animation
	if a.Start(0, 10, 50, 0) {
		t.Fatal("fling started below the minimum velocity")
	}
	if !a.Start(0, 1000, 50, 800) {
		t.Fatal("fling did not start")
	}
	total := 0
	now := time.Duration(0)
	for a.Active() && now < 10*time.Second {
		now += 16 * time.Millisecond
		total += a.Tick(now)
	}
	if a.Active() {
		t.Fatal("fling did not stop")
	}
	// v0*tau with the velocity capped at 800.
	if total < 250 || total > 261 {
		t.Errorf("fling distance = %d, want about 260", total)
	}
}
