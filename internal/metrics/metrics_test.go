package metrics

import (
	"math"
	"testing"

	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"
)

// observeWave feeds a synthetic action potential train: a sinusoid around
// -30 mV with the given period, sampled at dt.
func observeWave(m dynamo.Metric, period, duration, dt float64) {
	state := make(dynamo.State, 33)
	for t := 0.0; t < duration; t += dt {
		state[0] = -30.0 + 40.0*math.Sin(2*math.Pi*t/period)
		state[15] = 0.4 + 0.05*math.Sin(2*math.Pi*t/period)
		state[17] = 1e-4 + 5e-5*math.Sin(2*math.Pi*t/period)
		m.Observe(state, t)
	}
}

func TestBeatingRate(t *testing.T) {
	m := NewBeatingRate()
	observeWave(m, 0.8, 4.0, 1e-4)

	// 0.8 s period is 75 bpm.
	if got := m.Value(); math.Abs(got-75.0) > 1.0 {
		t.Errorf("rate = %v bpm, want about 75", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("rate after reset = %v, want 0", m.Value())
	}
}

func TestBeatingRateQuiescent(t *testing.T) {
	m := NewBeatingRate()
	state := make(dynamo.State, 33)
	state[0] = -60.0
	for i := 0; i < 1000; i++ {
		m.Observe(state, float64(i)*1e-3)
	}
	if m.Value() != 0 {
		t.Errorf("rate for quiescent cell = %v, want 0", m.Value())
	}
}

func TestCycleLength(t *testing.T) {
	m := NewCycleLength()
	observeWave(m, 0.8, 4.0, 1e-4)
	if got := m.Value(); math.Abs(got-0.8) > 0.01 {
		t.Errorf("cycle length = %v s, want about 0.8", got)
	}
}

func TestAmplitude(t *testing.T) {
	m := NewAmplitude()
	observeWave(m, 0.8, 4.0, 1e-4)
	if got := m.Value(); math.Abs(got-80.0) > 0.5 {
		t.Errorf("amplitude = %v mV, want about 80", got)
	}
}

func TestMaxDiastolicPotential(t *testing.T) {
	m := NewMaxDiastolicPotential()
	observeWave(m, 0.8, 4.0, 1e-4)
	if got := m.Value(); math.Abs(got+70.0) > 0.5 {
		t.Errorf("MDP = %v mV, want about -70", got)
	}
}

func TestUpstrokeVelocity(t *testing.T) {
	m := NewUpstrokeVelocity()
	observeWave(m, 0.8, 4.0, 1e-4)

	// Peak slope of A*sin(2*pi*t/T) is 2*pi*A/T.
	want := 2 * math.Pi * 40.0 / 0.8
	if got := m.Value(); math.Abs(got-want) > want*0.01 {
		t.Errorf("max dV/dt = %v mV/s, want about %v", got, want)
	}
}

func TestDiastolicCa(t *testing.T) {
	m := NewDiastolicCa()
	observeWave(m, 0.8, 4.0, 1e-4)
	if got := m.Value(); math.Abs(got-5e-5) > 1e-6 {
		t.Errorf("diastolic Ca = %v mM, want about 5e-5", got)
	}
}

func TestSRLoad(t *testing.T) {
	m := NewSRLoad()
	observeWave(m, 0.8, 4.0, 1e-4)
	if got := m.Value(); math.Abs(got-0.4) > 0.01 {
		t.Errorf("mean SR load = %v mM, want about 0.4", got)
	}
}

// Every metric satisfies the simulator interface.
var _ = []dynamo.Metric{
	NewBeatingRate(),
	NewCycleLength(),
	NewAmplitude(),
	NewMaxDiastolicPotential(),
	NewUpstrokeVelocity(),
	NewDiastolicCa(),
	NewSRLoad(),
}
