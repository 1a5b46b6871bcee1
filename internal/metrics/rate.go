// Package metrics computes electrophysiological summary metrics over a
// simulation run. All metrics read the membrane potential from state slot 0.
package metrics

import (
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"
)

// upstrokeThreshold is the membrane potential, in mV, whose upward crossing
// marks the start of an action potential.
const upstrokeThreshold = -20.0

// BeatingRate counts upstroke threshold crossings and reports the firing
// rate in beats per minute.
type BeatingRate struct {
	crossings int
	prevV     float64
	firstT    float64
	lastT     float64
	firstSet  bool
	haveBeat  bool
}

func NewBeatingRate() *BeatingRate { return &BeatingRate{} }

func (b *BeatingRate) Name() string { return "beating_rate_bpm" }

func (b *BeatingRate) Observe(x dynamo.State, t float64) {
	v := x[0]
	if !b.firstSet {
		b.firstSet = true
		b.prevV = v
		return
	}
	if b.prevV < upstrokeThreshold && v >= upstrokeThreshold {
		b.crossings++
		if !b.haveBeat {
			b.firstT = t
			b.haveBeat = true
		}
		b.lastT = t
	}
	b.prevV = v
}

// Value reports the rate from the span between the first and last upstroke,
// so partial cycles at the edges of the run do not bias it.
func (b *BeatingRate) Value() float64 {
	if b.crossings < 2 || b.lastT == b.firstT {
		return 0
	}
	return 60.0 * float64(b.crossings-1) / (b.lastT - b.firstT)
}

func (b *BeatingRate) Reset() { *b = BeatingRate{} }

// CycleLength reports the mean interval between upstrokes in seconds.
type CycleLength struct {
	rate BeatingRate
}

func NewCycleLength() *CycleLength { return &CycleLength{} }

func (c *CycleLength) Name() string { return "cycle_length_s" }

func (c *CycleLength) Observe(x dynamo.State, t float64) { c.rate.Observe(x, t) }

func (c *CycleLength) Value() float64 {
	if c.rate.crossings < 2 {
		return 0
	}
	return (c.rate.lastT - c.rate.firstT) / float64(c.rate.crossings-1)
}

func (c *CycleLength) Reset() { c.rate.Reset() }
