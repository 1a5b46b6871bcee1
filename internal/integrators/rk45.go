package integrators

import (
	"math"

	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"
)

// RK45 is the Dormand-Prince 5(4) embedded pair. Step takes the fifth-order
// solution; StepAdaptive additionally proposes the next step size from the
// embedded error estimate.
type RK45 struct{}

func NewRK45() *RK45 { return &RK45{} }

// Dormand-Prince Butcher tableau.
var (
	dpC = [7]float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1, 1}
	dpA = [7][6]float64{
		{},
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{44.0 / 45, -56.0 / 15, 32.0 / 9},
		{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
		{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
		{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
	}
	dpB5 = [7]float64{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84, 0}
	dpB4 = [7]float64{5179.0 / 57600, 0, 7571.0 / 16695, 393.0 / 640, -92097.0 / 339200, 187.0 / 2100, 1.0 / 40}
)

func (r *RK45) stages(dyn dynamo.System, x dynamo.State, t, dt float64) ([7]dynamo.State, error) {
	var k [7]dynamo.State
	n := len(x)
	tmp := make(dynamo.State, n)

	for s := 0; s < 7; s++ {
		for i := 0; i < n; i++ {
			acc := x[i]
			for j := 0; j < s; j++ {
				acc += dt * dpA[s][j] * k[j][i]
			}
			tmp[i] = acc
		}
		var err error
		k[s], err = dyn.Derive(tmp, t+dpC[s]*dt)
		if err != nil {
			return k, err
		}
	}
	return k, nil
}

func (r *RK45) Step(dyn dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	k, err := r.stages(dyn, x, t, dt)
	if err != nil {
		return nil, err
	}
	out := make(dynamo.State, len(x))
	for i := range x {
		acc := x[i]
		for s := 0; s < 7; s++ {
			acc += dt * dpB5[s] * k[s][i]
		}
		out[i] = acc
	}
	return out, nil
}

func (r *RK45) StepAdaptive(dyn dynamo.System, x dynamo.State, t, dt, tol float64) (dynamo.State, float64, error) {
	k, err := r.stages(dyn, x, t, dt)
	if err != nil {
		return nil, dt, err
	}

	n := len(x)
	out := make(dynamo.State, n)
	errEst := 0.0
	for i := 0; i < n; i++ {
		acc5 := x[i]
		acc4 := x[i]
		for s := 0; s < 7; s++ {
			acc5 += dt * dpB5[s] * k[s][i]
			acc4 += dt * dpB4[s] * k[s][i]
		}
		out[i] = acc5
		d := acc5 - acc4
		errEst += d * d
	}
	errEst = math.Sqrt(errEst)

	// Standard controller with a safety factor; growth and shrink clamped.
	next := dt
	if errEst > 0 {
		factor := 0.9 * math.Pow(tol/errEst, 1.0/5.0)
		factor = math.Min(math.Max(factor, 0.2), 5.0)
		next = dt * factor
	} else {
		next = dt * 5.0
	}

	return out, next, nil
}
