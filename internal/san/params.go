package san

import (
	"fmt"
	"math"

	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"
)

const (
	// NumPrimary is the number of primary model constants.
	NumPrimary = 91
	// NumDerived is the number of constants computed from the primary ones.
	NumDerived = 25
	// NumConstants is the full constant vector length.
	NumConstants = NumPrimary + NumDerived
	// NumStates is the state vector length.
	NumStates = 33
)

// Reserved primary-constant slots. ACh and noradrenaline are the only slots
// mutable after construction, and only through Cell.Update.
const (
	idxACh = 9
	idxNor = 10
)

// Label describes one constant or state slot.
type Label struct {
	Name        string
	Description string
	Unit        string
}

func (l Label) String() string {
	return fmt.Sprintf("%s (%s) [%s]", l.Name, l.Description, l.Unit)
}

// ParameterSet carries the primary constants and initial state of one cell,
// with positional labels: ConstantLabels[i] describes Constants[i]. It is
// assembled by a loader and validated at cell construction.
type ParameterSet struct {
	Constants      []float64
	States         []float64
	ConstantLabels []Label
	StateLabels    []Label
}

// Validate checks slot counts, label alignment and finiteness of every
// primary constant and initial state.
func (p *ParameterSet) Validate() error {
	if len(p.Constants) != NumPrimary {
		return fmt.Errorf("%w: got %d constants, want %d", dynamo.ErrConfiguration, len(p.Constants), NumPrimary)
	}
	if len(p.States) != NumStates {
		return fmt.Errorf("%w: got %d states, want %d", dynamo.ErrConfiguration, len(p.States), NumStates)
	}
	if len(p.ConstantLabels) != NumPrimary {
		return fmt.Errorf("%w: got %d constant labels, want %d", dynamo.ErrConfiguration, len(p.ConstantLabels), NumPrimary)
	}
	if len(p.StateLabels) != NumStates {
		return fmt.Errorf("%w: got %d state labels, want %d", dynamo.ErrConfiguration, len(p.StateLabels), NumStates)
	}
	for i, v := range p.Constants {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: constant %d (%s) is %v", dynamo.ErrConfiguration, i, p.ConstantLabels[i].Name, v)
		}
	}
	for i, v := range p.States {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: initial state %d (%s) is %v", dynamo.ErrConfiguration, i, p.StateLabels[i].Name, v)
		}
	}
	return nil
}

// Set overwrites the primary constant with the given name. It is intended for
// loader-side protocol adjustments (e.g. enabling voltage clamp) before the
// set is handed to NewCell; constants are immutable once a Cell holds them.
func (p *ParameterSet) Set(name string, value float64) error {
	for i := range p.ConstantLabels {
		if p.ConstantLabels[i].Name == name {
			p.Constants[i] = value
			return nil
		}
	}
	return fmt.Errorf("%w: no constant named %q", dynamo.ErrConfiguration, name)
}

// Get returns the primary constant with the given name.
func (p *ParameterSet) Get(name string) (float64, error) {
	for i := range p.ConstantLabels {
		if p.ConstantLabels[i].Name == name {
			return p.Constants[i], nil
		}
	}
	return 0, fmt.Errorf("%w: no constant named %q", dynamo.ErrConfiguration, name)
}

// clone returns a deep copy so a Cell never aliases loader-owned slices.
func (p *ParameterSet) clone() *ParameterSet {
	c := &ParameterSet{
		Constants:      append([]float64(nil), p.Constants...),
		States:         append([]float64(nil), p.States...),
		ConstantLabels: append([]Label(nil), p.ConstantLabels...),
		StateLabels:    append([]Label(nil), p.StateLabels...),
	}
	return c
}
