package sweep

import (
	"context"
	"errors"
	"testing"

	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/dynamo"
	"github.com/IsabelB18/HumanSAN-Fabbri2017/internal/params"
)

func TestGridRunsAllPoints(t *testing.T) {
	ps, err := params.Default()
	if err != nil {
		t.Fatalf("load params: %v", err)
	}

	grid := &Grid{
		Params:        ps,
		Acetylcholine: []float64{0, 1e-5},
		Noradrenaline: []float64{0, 1e-6},
		Integrator:    "rk4",
	}

	cfg := dynamo.DefaultConfig()
	cfg.Dt = 1e-5
	cfg.Duration = 1e-3

	points, err := grid.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("got %d points, want 4", len(points))
	}

	seen := make(map[[2]float64]bool)
	for _, p := range points {
		seen[[2]float64{p.Acetylcholine, p.Noradrenaline}] = true
		if p.Metrics == nil {
			t.Errorf("point (%g, %g) has no metrics", p.Acetylcholine, p.Noradrenaline)
		}
	}
	for _, ach := range grid.Acetylcholine {
		for _, nor := range grid.Noradrenaline {
			if !seen[[2]float64{ach, nor}] {
				t.Errorf("missing point (%g, %g)", ach, nor)
			}
		}
	}
}

func TestGridBadIntegrator(t *testing.T) {
	ps, err := params.Default()
	if err != nil {
		t.Fatalf("load params: %v", err)
	}

	grid := &Grid{
		Params:        ps,
		Acetylcholine: []float64{0},
		Noradrenaline: []float64{0},
		Integrator:    "leapfrog",
	}
	if _, err := grid.Run(context.Background(), dynamo.DefaultConfig()); !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}
