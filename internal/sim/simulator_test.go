package sim

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/san-kum/pidlab/internal/control"
)

func step(at, before, after float64) SetpointProfile {
	return func(t float64) float64 {
		if t < at {
			return before
		}
		return after
	}
}

func TestSimulatePID_Shape(t *testing.T) {
	r := SimulatePID(control.Gains{Kp: 2, Ki: 0.15}, Constant(22), 18, 30)

	if r.Len() != 600 {
		t.Fatalf("expected 600 samples, got %d", r.Len())
	}
	for name, series := range map[string][]float64{
		"temp": r.Temp, "control": r.Control, "error": r.Error, "setpoint": r.Setpoint,
	} {
		if len(series) != r.Len() {
			t.Errorf("%s has %d samples, want %d", name, len(series), r.Len())
		}
	}
	for i, tm := range r.T {
		if tm != float64(i)*0.05 {
			t.Fatalf("t[%d] = %v, want %v", i, tm, float64(i)*0.05)
		}
	}
	if r.Dt != Dt || r.Duration != 30 {
		t.Errorf("metadata = (%v, %v)", r.Dt, r.Duration)
	}
}

func TestSimulatePID_MatchesHandStep(t *testing.T) {
	g := control.Gains{Kp: 3, Ki: 0.5, Kd: 1}
	r := SimulatePID(g, Constant(22), 18, 0.1)

	if r.Len() != 2 {
		t.Fatalf("expected 2 samples, got %d", r.Len())
	}

	// step 0: e=4, integral=0.2, no derivative
	e0 := 4.0
	u0 := 3*e0 + 0.5*(e0*Dt)
	wn2 := 0.8 * 0.8
	acc := 0.75*wn2*u0 - wn2*18
	yDot := acc * Dt
	y := 18 + yDot*Dt

	if r.Error[0] != e0 {
		t.Errorf("error[0] = %v, want %v", r.Error[0], e0)
	}
	if math.Abs(r.Control[0]-u0) > 1e-12 {
		t.Errorf("control[0] = %v, want %v", r.Control[0], u0)
	}
	if math.Abs(r.Temp[0]-y) > 1e-12 {
		t.Errorf("temp[0] = %v, want %v", r.Temp[0], y)
	}
	// the error at step 1 is measured against the state after step 0
	if math.Abs(r.Error[1]-(22-r.Temp[0])) > 1e-12 {
		t.Errorf("error[1] = %v, want %v", r.Error[1], 22-r.Temp[0])
	}
}

func TestSimulatePID_Deterministic(t *testing.T) {
	g := control.Gains{Kp: 6, Ki: 0.8, Kd: 4.5}
	profile := step(20, 22, 25)

	a := SimulatePID(g, profile, 18, 40)
	b := SimulatePID(g, profile, 18, 40)

	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different results")
	}
}

func TestSimulatePID_ControlClipped(t *testing.T) {
	r := SimulatePID(control.Gains{Kp: 8, Ki: 2, Kd: 8}, step(15, 22, 5), 18, 50)

	sawLimit := false
	for i, u := range r.Control {
		if u < control.UMin || u > control.UMax {
			t.Fatalf("control[%d] = %v outside actuator limits", i, u)
		}
		if u == control.UMax || u == control.UMin {
			sawLimit = true
		}
	}
	if !sawLimit {
		t.Error("aggressive gains should hit the actuator limit")
	}
}

func TestSimulatePID_ZeroGains(t *testing.T) {
	r := SimulatePID(control.Gains{}, Constant(22), 18, 50)

	for i, u := range r.Control {
		if u != 0 {
			t.Fatalf("control[%d] = %v, want 0", i, u)
		}
	}

	last := r.Temp[r.Len()-1]
	if math.Abs(last) >= 1 {
		t.Errorf("unforced plant should decay toward 0, got %f", last)
	}
}

func TestSimulatePID_IntegralRemovesOffset(t *testing.T) {
	p := SimulatePID(control.Gains{Kp: 3}, Constant(22), 18, 50)
	pi := SimulatePID(control.Gains{Kp: 3, Ki: 0.5}, Constant(22), 18, 50)

	final := func(r *Result) float64 {
		n := r.Len() - 1
		return math.Abs(r.Temp[n] - r.Setpoint[n])
	}

	if final(p) <= final(pi) {
		t.Errorf("P-only final error %f should exceed PI final error %f", final(p), final(pi))
	}
}

func TestSimulateBaseline(t *testing.T) {
	r := SimulateBaseline(Constant(22), 18, 30)

	if r.Error != nil {
		t.Error("baseline result should not carry an error series")
	}
	if r.Len() != 600 {
		t.Fatalf("expected 600 samples, got %d", r.Len())
	}
	if r.Control[0] != control.HeatOutput {
		t.Errorf("first actuation = %v, want %v", r.Control[0], control.HeatOutput)
	}

	enteredBand := false
	for i := 1; i < r.Len(); i++ {
		u := r.Control[i]
		if u != control.HeatOutput && u != control.CoolOutput && u != 0 {
			t.Fatalf("control[%d] = %v not in {-20, 0, 50}", i, u)
		}
		y := r.Temp[i-1]
		if y >= 20.5 && y <= 23.5 {
			enteredBand = true
			if u != 0 {
				t.Fatalf("control[%d] = %v inside the deadband (y=%f)", i, u, y)
			}
		}
	}
	if !enteredBand {
		t.Error("baseline never reached the deadband")
	}
}

func TestSimulate_EmptyDuration(t *testing.T) {
	for _, d := range []float64{0, -1} {
		r, err := Simulate(control.NewPIDStrategy(control.Gains{Kp: 1}), Constant(22), 18, d)
		if err != nil {
			t.Fatalf("duration %v: unexpected error %v", d, err)
		}
		if !r.Empty() {
			t.Errorf("duration %v: expected empty result, got %d samples", d, r.Len())
		}
	}
}

func TestSimulate_Errors(t *testing.T) {
	_, err := Simulate(control.Strategy{Kind: 42}, Constant(22), 18, 1)
	if !errors.Is(err, control.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}

	_, err = Simulate(control.NewBaselineStrategy(), nil, 18, 1)
	if !errors.Is(err, ErrNilProfile) {
		t.Errorf("expected ErrNilProfile, got %v", err)
	}
}

func TestSimulate_NonFiniteGainPropagates(t *testing.T) {
	r := SimulatePID(control.Gains{Kp: math.NaN()}, Constant(22), 18, 1)

	if r.Len() != 20 {
		t.Fatalf("expected 20 samples, got %d", r.Len())
	}
	if r.IsValid() {
		t.Error("NaN gain should propagate to a non-finite trajectory")
	}
}

func BenchmarkSimulatePID(b *testing.B) {
	g := control.Gains{Kp: 6, Ki: 0.8, Kd: 4.5}
	profile := step(20, 22, 25)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SimulatePID(g, profile, 18, 40)
	}
}

func BenchmarkSimulateBaseline(b *testing.B) {
	profile := step(20, 22, 25)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SimulateBaseline(profile, 18, 40)
	}
}
