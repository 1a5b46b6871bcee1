package integrators

import "github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta method with a fixed step.
// The scratch vector is reused between calls, so a single RK4 value must not
// be shared between goroutines.
type RK4 struct {
	scratch dynamo.State
}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	n := len(x)
	if len(r.scratch) != n {
		r.scratch = make(dynamo.State, n)
	}
	tmp := r.scratch

	k1, err := dyn.Derive(x, t)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt/2*k1[i]
	}
	k2, err := dyn.Derive(tmp, t+dt/2)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt/2*k2[i]
	}
	k3, err := dyn.Derive(tmp, t+dt/2)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt*k3[i]
	}
	k4, err := dyn.Derive(tmp, t+dt)
	if err != nil {
		return nil, err
	}

	out := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		out[i] = x[i] + dt/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out, nil
}
