// Package sweep runs dose-response grids over the autonomic modulators.
package sweep

import (
	"context"

	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/integrators"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/metrics"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/san"
)

// Point is one grid cell: a modulator pair and the summary metrics of the
// simulation run at that dose.
type Point struct {
	Acetylcholine float64
	Noradrenaline float64
	Metrics       map[string]float64
}

// Grid sweeps the cross product of the given ACh and noradrenaline doses.
// Every point gets its own cell built from the shared parameter set, so the
// runs are independent and execute in parallel.
type Grid struct {
	Params        *san.ParameterSet
	Acetylcholine []float64
	Noradrenaline []float64
	Integrator    string
}

func (g *Grid) Run(ctx context.Context, cfg dynamo.Config) ([]Point, error) {
	n := len(g.Acetylcholine) * len(g.Noradrenaline)
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{
			Acetylcholine: g.Acetylcholine[i/len(g.Noradrenaline)],
			Noradrenaline: g.Noradrenaline[i%len(g.Noradrenaline)],
		}
	}

	ens := dynamo.NewEnsemble(n, func(i int) (*dynamo.Simulator, dynamo.State, error) {
		cell, err := san.NewCell(g.Params, points[i].Acetylcholine, points[i].Noradrenaline)
		if err != nil {
			return nil, nil, err
		}
		integ, err := integrators.New(g.Integrator)
		if err != nil {
			return nil, nil, err
		}
		sim := dynamo.New(cell, integ)
		sim.AddMetric(metrics.NewBeatingRate())
		sim.AddMetric(metrics.NewCycleLength())
		sim.AddMetric(metrics.NewAmplitude())
		sim.AddMetric(metrics.NewMaxDiastolicPotential())
		sim.AddMetric(metrics.NewDiastolicCa())
		return sim, cell.InitialState(), nil
	})

	results, err := ens.Run(ctx, cfg)
	if err != nil {
		return nil, err
	}

	for i, r := range results {
		if r != nil {
			points[i].Metrics = r.Metrics
		}
	}
	return points, nil
}
