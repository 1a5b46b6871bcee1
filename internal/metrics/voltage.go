package metrics

import (
	"math"

	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"
)

// Amplitude reports the peak-to-peak membrane potential in mV.
type Amplitude struct {
	min     float64
	max     float64
	samples int
}

func NewAmplitude() *Amplitude { return &Amplitude{} }

func (a *Amplitude) Name() string { return "ap_amplitude_mv" }

func (a *Amplitude) Observe(x dynamo.State, t float64) {
	v := x[0]
	if a.samples == 0 {
		a.min, a.max = v, v
	} else {
		a.min = math.Min(a.min, v)
		a.max = math.Max(a.max, v)
	}
	a.samples++
}

func (a *Amplitude) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.max - a.min
}

func (a *Amplitude) Reset() { *a = Amplitude{} }

// MaxDiastolicPotential reports the most negative membrane potential in mV.
type MaxDiastolicPotential struct {
	min     float64
	samples int
}

func NewMaxDiastolicPotential() *MaxDiastolicPotential { return &MaxDiastolicPotential{} }

func (m *MaxDiastolicPotential) Name() string { return "mdp_mv" }

func (m *MaxDiastolicPotential) Observe(x dynamo.State, t float64) {
	if m.samples == 0 || x[0] < m.min {
		m.min = x[0]
	}
	m.samples++
}

func (m *MaxDiastolicPotential) Value() float64 { return m.min }

func (m *MaxDiastolicPotential) Reset() { *m = MaxDiastolicPotential{} }

// UpstrokeVelocity reports the fastest observed dV/dt in mV/s, estimated by
// forward difference between consecutive observations.
type UpstrokeVelocity struct {
	prevV   float64
	prevT   float64
	max     float64
	samples int
}

func NewUpstrokeVelocity() *UpstrokeVelocity { return &UpstrokeVelocity{} }

func (u *UpstrokeVelocity) Name() string { return "max_dvdt_mv_per_s" }

func (u *UpstrokeVelocity) Observe(x dynamo.State, t float64) {
	v := x[0]
	if u.samples > 0 && t > u.prevT {
		slope := (v - u.prevV) / (t - u.prevT)
		u.max = math.Max(u.max, slope)
	}
	u.prevV, u.prevT = v, t
	u.samples++
}

func (u *UpstrokeVelocity) Value() float64 { return u.max }

func (u *UpstrokeVelocity) Reset() { *u = UpstrokeVelocity{} }
