package san

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"
)

// Cell is one sinoatrial node cell: an immutable parameter set plus the
// current 116-entry constant vector. Evaluate is safe for concurrent use;
// Update must not race with Evaluate (wrap the Cell in a lock or give each
// goroutine its own Cell, as the sweep runner does).
type Cell struct {
	params    *ParameterSet
	constants *[NumConstants]float64
	ach       float64
	nor       float64
}

// NewCell validates the parameter set and derives the full constant vector
// for the given modulator concentrations. The set is deep-copied; the caller
// keeps ownership of its slices.
func NewCell(ps *ParameterSet, ach, nor float64) (*Cell, error) {
	if ps == nil {
		return nil, fmt.Errorf("%w: nil parameter set", dynamo.ErrConfiguration)
	}
	if err := ps.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(ach) || math.IsInf(ach, 0) {
		return nil, fmt.Errorf("%w: acetylcholine concentration is %v", dynamo.ErrConfiguration, ach)
	}
	if math.IsNaN(nor) || math.IsInf(nor, 0) {
		return nil, fmt.Errorf("%w: noradrenaline concentration is %v", dynamo.ErrConfiguration, nor)
	}

	c := &Cell{params: ps.clone()}
	c.ach = ach
	c.nor = nor
	c.constants = c.buildConstants(ach, nor)
	return c, nil
}

// buildConstants assembles a fresh constant vector: primaries from the
// parameter set, the two modulator slots, then the derived block.
func (c *Cell) buildConstants(ach, nor float64) *[NumConstants]float64 {
	v := new([NumConstants]float64)
	copy(v[:NumPrimary], c.params.Constants)
	v[idxACh] = ach
	v[idxNor] = nor
	deriveConstants(v)
	return v
}

// Update re-derives the constant vector for new modulator concentrations and
// swaps it in whole. Evaluations in flight keep the vector they started with.
// Concentrations are not range-checked: negative doses are accepted but
// physiologically meaningless, and usually fault at the next evaluation.
func (c *Cell) Update(ach, nor float64) error {
	if math.IsNaN(ach) || math.IsInf(ach, 0) {
		return fmt.Errorf("%w: acetylcholine concentration is %v", dynamo.ErrConfiguration, ach)
	}
	if math.IsNaN(nor) || math.IsInf(nor, 0) {
		return fmt.Errorf("%w: noradrenaline concentration is %v", dynamo.ErrConfiguration, nor)
	}
	c.ach = ach
	c.nor = nor
	c.constants = c.buildConstants(ach, nor)
	return nil
}

// Evaluate computes dy/dt at (t, y). y is read-only and never retained; the
// result is freshly allocated. A non-finite derivative entry is reported as
// a numeric-domain error naming the offending state.
func (c *Cell) Evaluate(t float64, y []float64) ([]float64, error) {
	if len(y) != NumStates {
		return nil, fmt.Errorf("%w: got %d states, want %d", dynamo.ErrDimensionMismatch, len(y), NumStates)
	}
	dydt := derive(c.constants, t, y)
	for i, v := range dydt {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: d%s/dt = %v at t=%g",
				dynamo.ErrNumericDomain, c.params.StateLabels[i].Name, v, t)
		}
	}
	return dydt, nil
}

// Derive adapts Evaluate to the dynamo.System interface.
func (c *Cell) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	dydt, err := c.Evaluate(t, x)
	if err != nil {
		return nil, err
	}
	return dydt, nil
}

func (c *Cell) StateDim() int { return NumStates }

// InitialState returns a copy of the model's initial conditions.
func (c *Cell) InitialState() dynamo.State {
	return dynamo.State(c.params.States).Clone()
}

// Constants returns a copy of the full 116-entry constant vector.
func (c *Cell) Constants() []float64 {
	out := make([]float64, NumConstants)
	copy(out, c.constants[:])
	return out
}

// ConstantLabels returns labels for all 116 constant slots, primaries first.
func (c *Cell) ConstantLabels() []Label {
	out := make([]Label, 0, NumConstants)
	out = append(out, c.params.ConstantLabels...)
	out = append(out, derivedLabels[:]...)
	return out
}

func (c *Cell) StateLabels() []Label {
	return append([]Label(nil), c.params.StateLabels...)
}

// StateNames implements dynamo.Labeled.
func (c *Cell) StateNames() []string {
	names := make([]string, NumStates)
	for i, l := range c.params.StateLabels {
		names[i] = l.Name
	}
	return names
}

// ACh returns the current acetylcholine concentration in mM.
func (c *Cell) ACh() float64 { return c.ach }

// Noradrenaline returns the current noradrenaline concentration in mM.
func (c *Cell) Noradrenaline() float64 { return c.nor }

// WriteInfo dumps the constant and state tables in a readable form.
func (c *Cell) WriteInfo(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "acetylcholine\t%g mM\nnoradrenaline\t%g mM\n\n", c.ach, c.nor)
	fmt.Fprintln(tw, "IDX\tCONSTANT\tVALUE\tUNIT\tDESCRIPTION")
	for i, l := range c.ConstantLabels() {
		fmt.Fprintf(tw, "%d\t%s\t%g\t%s\t%s\n", i, l.Name, c.constants[i], l.Unit, l.Description)
	}
	fmt.Fprintln(tw, "\nIDX\tSTATE\tINITIAL\tUNIT\tDESCRIPTION")
	for i, l := range c.params.StateLabels {
		fmt.Fprintf(tw, "%d\t%s\t%g\t%s\t%s\n", i, l.Name, c.params.States[i], l.Unit, l.Description)
	}
	return tw.Flush()
}
