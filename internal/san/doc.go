// Package san implements the Fabbri-Fantini-Wilders-Severi (2017) model of
// the human sinoatrial node action potential.
//
// The model has 91 primary constants, 25 constants derived from them and from
// the acetylcholine and noradrenaline concentrations, and 33 state variables
// (membrane potential, ionic concentrations, gating and Ca-release-unit
// occupancy fractions). [Cell] holds the current constant vector and exposes
// the derivative evaluation to a numerical integrator through the
// dynamo.System interface.
//
// Evaluation is a pure function of (constants, t, state): it retains no alias
// to the caller's state vector and writes only a freshly allocated output.
// Update rebuilds the derived constants into a new vector and swaps it in, so
// a half-derived vector is never observable.
//
// Reference: Fabbri et al., "Computational analysis of the human sinus node
// action potential: model development and effects of mutations",
// J Physiol 595.7 (2017), doi:10.1113/JP273259. Constant and initial-state
// values follow the CellML encoding of the model.
package san
