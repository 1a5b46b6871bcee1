package san_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/san"
)

func TestCellDimensions(t *testing.T) {
	cell := newCell(t, 0, 0)

	if got := cell.StateDim(); got != san.NumStates {
		t.Errorf("StateDim = %d, want %d", got, san.NumStates)
	}
	if got := len(cell.Constants()); got != san.NumConstants {
		t.Errorf("len(Constants) = %d, want %d", got, san.NumConstants)
	}
	if got := len(cell.ConstantLabels()); got != san.NumConstants {
		t.Errorf("len(ConstantLabels) = %d, want %d", got, san.NumConstants)
	}
	if got := len(cell.StateLabels()); got != san.NumStates {
		t.Errorf("len(StateLabels) = %d, want %d", got, san.NumStates)
	}
	if got := len(cell.InitialState()); got != san.NumStates {
		t.Errorf("len(InitialState) = %d, want %d", got, san.NumStates)
	}
}

func TestCellParameterSetCopied(t *testing.T) {
	ps := defaultParams(t)
	cell, err := san.NewCell(ps, 0, 0)
	if err != nil {
		t.Fatalf("new cell: %v", err)
	}

	// Corrupting the loader's slices after construction must not reach the cell.
	want := ps.States[0]
	ps.States[0] = 1e99
	ps.Constants[0] = 1e99
	if got := cell.InitialState()[0]; got != want {
		t.Errorf("initial state aliased the parameter set: %v", got)
	}
	if got := cell.Constants()[0]; got == 1e99 {
		t.Error("constants aliased the parameter set")
	}
}

func TestInitialStateClone(t *testing.T) {
	cell := newCell(t, 0, 0)
	a := cell.InitialState()
	a[0] = 1e99
	if got := cell.InitialState()[0]; got == 1e99 {
		t.Error("InitialState returned a shared slice")
	}
}

func TestNewCellValidation(t *testing.T) {
	ps := defaultParams(t)
	ps.Constants = ps.Constants[:len(ps.Constants)-1]
	if _, err := san.NewCell(ps, 0, 0); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error for short constants, got %v", err)
	}

	ps = defaultParams(t)
	ps.States[3] = math.NaN()
	if _, err := san.NewCell(ps, 0, 0); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error for NaN state, got %v", err)
	}

	if _, err := san.NewCell(nil, 0, 0); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error for nil set, got %v", err)
	}

	if _, err := san.NewCell(defaultParams(t), math.Inf(1), 0); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error for Inf dose, got %v", err)
	}
}

func TestModulatorAccessors(t *testing.T) {
	cell := newCell(t, 2.2e-5, 1e-6)
	if cell.ACh() != 2.2e-5 {
		t.Errorf("ACh = %v, want 2.2e-5", cell.ACh())
	}
	if cell.Noradrenaline() != 1e-6 {
		t.Errorf("Noradrenaline = %v, want 1e-6", cell.Noradrenaline())
	}

	if err := cell.Update(0, 0); err != nil {
		t.Fatalf("update: %v", err)
	}
	if cell.ACh() != 0 || cell.Noradrenaline() != 0 {
		t.Errorf("modulators after update = (%v, %v), want (0, 0)", cell.ACh(), cell.Noradrenaline())
	}
}

func TestStateNames(t *testing.T) {
	cell := newCell(t, 0, 0)
	names := cell.StateNames()
	if len(names) != san.NumStates {
		t.Fatalf("len(StateNames) = %d, want %d", len(names), san.NumStates)
	}
	if names[0] != "V_ode" {
		t.Errorf("state 0 named %q, want V_ode", names[0])
	}
	for i, n := range names {
		if n == "" {
			t.Errorf("state %d has an empty name", i)
		}
	}
}

func TestWriteInfo(t *testing.T) {
	cell := newCell(t, 0, 0)
	var buf bytes.Buffer
	if err := cell.WriteInfo(&buf); err != nil {
		t.Fatalf("write info: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"CONSTANT", "STATE", "V_ode", "g_Na", "RTONF"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q", want)
		}
	}
}

// Cell satisfies the simulator's system interfaces.
var (
	_ dynamo.System  = (*san.Cell)(nil)
	_ dynamo.Labeled = (*san.Cell)(nil)
)
