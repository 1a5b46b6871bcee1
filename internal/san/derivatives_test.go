package san_test

import (
	"errors"
	"math"
	"testing"

	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/san"
)

func TestEvaluateDeterministic(t *testing.T) {
	cell := newCell(t, 0, 0)
	y := cell.InitialState()

	a, err := cell.Evaluate(0, y)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	b, err := cell.Evaluate(0, y)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("dydt[%d] differs between identical calls: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	cell := newCell(t, 0, 0)
	y := cell.InitialState()
	before := y.Clone()

	if _, err := cell.Evaluate(0, y); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	for i := range y {
		if y[i] != before[i] {
			t.Errorf("state %d mutated: %v -> %v", i, before[i], y[i])
		}
	}
}

func TestEvaluateFreshOutput(t *testing.T) {
	cell := newCell(t, 0, 0)
	y := cell.InitialState()

	a, _ := cell.Evaluate(0, y)
	want := a[0]
	a[0] = 1e99

	b, _ := cell.Evaluate(0, y)
	if b[0] != want {
		t.Errorf("mutating a previous result changed a later one: %v vs %v", b[0], want)
	}
}

func TestEvaluateDimensionMismatch(t *testing.T) {
	cell := newCell(t, 0, 0)
	_, err := cell.Evaluate(0, make([]float64, san.NumStates-1))
	if !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
}

// The RyR occupancy fractions R, O, I, RI form a closed four-state chain, so
// their derivatives must sum to zero.
func TestRyRStateConservation(t *testing.T) {
	cell := newCell(t, 0, 0)

	perturb := []struct {
		name   string
		mutate func(y dynamo.State)
	}{
		{"initial state", func(y dynamo.State) {}},
		{"depolarized", func(y dynamo.State) { y[0] = 10.0 }},
		{"high subspace Ca", func(y dynamo.State) { y[1] = 1e-3 }},
		{"depleted SR", func(y dynamo.State) { y[15] = 0.05 }},
		{"shifted occupancies", func(y dynamo.State) {
			y[11], y[12], y[13], y[14] = 0.25, 0.25, 0.25, 0.25
		}},
	}
	for _, tt := range perturb {
		y := cell.InitialState()
		tt.mutate(y)
		dydt, err := cell.Evaluate(0, y)
		if err != nil {
			t.Fatalf("%s: evaluate: %v", tt.name, err)
		}
		sum := dydt[11] + dydt[12] + dydt[13] + dydt[14]
		if math.Abs(sum) > 1e-9 {
			t.Errorf("%s: RyR occupancy derivatives sum to %v, want 0", tt.name, sum)
		}
	}
}

// The clamp drive holds the test potential on the closed-open window
// [t_holding, t_holding+t_test): identical derivatives anywhere inside the
// window, holding-potential derivatives at its upper edge.
func TestVoltageClampWindow(t *testing.T) {
	ps := defaultParams(t)
	if err := ps.Set("clamp_mode", 1); err != nil {
		t.Fatalf("set clamp_mode: %v", err)
	}
	cell, err := san.NewCell(ps, 0, 0)
	if err != nil {
		t.Fatalf("new cell: %v", err)
	}
	y := cell.InitialState()

	eval := func(at float64) []float64 {
		dydt, err := cell.Evaluate(at, y)
		if err != nil {
			t.Fatalf("evaluate at t=%g: %v", at, err)
		}
		return dydt
	}

	// Window is [0.5, 1.0) with the default protocol constants.
	onset := eval(0.5)
	inside := eval(0.9)
	before := eval(0.4)
	atEnd := eval(1.0)

	for i := range onset {
		if onset[i] != inside[i] {
			t.Errorf("dydt[%d] differs within the clamp window: %v vs %v", i, onset[i], inside[i])
		}
		if before[i] != atEnd[i] {
			t.Errorf("dydt[%d] at window end differs from pre-window: %v vs %v", i, atEnd[i], before[i])
		}
	}

	// The two potentials differ, so the derivatives must differ too.
	same := true
	for i := range onset {
		if onset[i] != before[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("clamp window has no effect on derivatives")
	}
}

func TestVoltageClampWindowEdges(t *testing.T) {
	ps := defaultParams(t)
	for name, v := range map[string]float64{
		"clamp_mode": 1, "t_holding": 100, "t_test": 2,
	} {
		if err := ps.Set(name, v); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	cell, err := san.NewCell(ps, 0, 0)
	if err != nil {
		t.Fatalf("new cell: %v", err)
	}
	y := cell.InitialState()

	eval := func(at float64) []float64 {
		dydt, err := cell.Evaluate(at, y)
		if err != nil {
			t.Fatalf("evaluate at t=%g: %v", at, err)
		}
		return dydt
	}

	on := eval(100.0)
	onLate := eval(101.999)
	off := eval(99.999)
	offEnd := eval(102.0)

	for i := range on {
		if on[i] != onLate[i] {
			t.Errorf("dydt[%d] at t=100 differs from t=101.999", i)
		}
		if off[i] != offEnd[i] {
			t.Errorf("dydt[%d] at t=102 differs from t=99.999", i)
		}
	}
	if on[0] == off[0] {
		t.Error("test potential indistinguishable from holding potential")
	}
}

func TestSingularVoltagesEvaluate(t *testing.T) {
	cell := newCell(t, 0, 0)

	for _, v := range []float64{-41.8, -41.0, -6.8, -1.8, 0.0} {
		y := cell.InitialState()
		y[0] = v
		dydt, err := cell.Evaluate(0, y)
		if err != nil {
			t.Errorf("evaluate at V=%g: %v", v, err)
			continue
		}
		for i, d := range dydt {
			if math.IsNaN(d) || math.IsInf(d, 0) {
				t.Errorf("dydt[%d] at V=%g is %v", i, v, d)
			}
		}
	}
}

func TestNumericDomainFault(t *testing.T) {
	cell := newCell(t, 0, 0)

	tests := []struct {
		name   string
		mutate func(y dynamo.State)
	}{
		{"zero intracellular Na", func(y dynamo.State) { y[2] = 0 }},
		{"negative junctional SR Ca", func(y dynamo.State) { y[15] = -0.1 }},
		{"NaN membrane potential", func(y dynamo.State) { y[0] = math.NaN() }},
	}
	for _, tt := range tests {
		y := cell.InitialState()
		tt.mutate(y)
		_, err := cell.Evaluate(0, y)
		if !errors.Is(err, dynamo.ErrNumericDomain) {
			t.Errorf("%s: expected numeric domain error, got %v", tt.name, err)
		}
	}
}

func TestSpontaneousDepolarization(t *testing.T) {
	cell := newCell(t, 0, 0)
	dydt, err := cell.Evaluate(0, cell.InitialState())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	// From the diastolic initial state the membrane depolarizes.
	if dydt[0] <= 0 {
		t.Errorf("dV/dt at the initial state = %v, want positive", dydt[0])
	}
}
