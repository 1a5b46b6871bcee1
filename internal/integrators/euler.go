// Package integrators provides fixed-step and adaptive ODE steppers for
// dynamo systems.
package integrators

import (
	"fmt"

	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"
)

// Euler is the forward Euler method. First order; useful as a baseline and
// for very stiff-step debugging, not for production runs.
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	dx, err := dyn.Derive(x, t)
	if err != nil {
		return nil, err
	}
	out := make(dynamo.State, len(x))
	for i := range x {
		out[i] = x[i] + dt*dx[i]
	}
	return out, nil
}

// New returns the integrator with the given name: "euler", "rk4" or "rk45".
func New(name string) (dynamo.Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	case "rk45":
		return NewRK45(), nil
	default:
		return nil, fmt.Errorf("%w: unknown integrator %q", dynamo.ErrConfiguration, name)
	}
}
