// Package dynamo provides the simulation primitives shared by the
// sinoatrial-node cell model and its tooling.
//
// The package defines the fundamental interfaces and types for numerical
// integration of ordinary differential equations (dX/dt = f(X, t)):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE right-hand sides
//   - [Integrator]: numerical stepper interface
//   - [Simulator]: orchestrates simulation runs
//
// # Example
//
//	ps, _ := params.Default()
//	cell, _ := san.NewCell(ps, 0, 0)
//	integ := integrators.NewRK4()
//	sim := dynamo.New(cell, integ)
//	result, _ := sim.Run(ctx, cell.InitialState(), cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe, and neither are the systems they
// drive. For parallel runs, use [Ensemble], which builds an independently
// owned simulator (and system) per goroutine.
package dynamo
