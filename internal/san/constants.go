package san

import "math"

// derivedLabels describes constant slots 91..115, positionally.
var derivedLabels = [NumDerived]Label{
	{"RTONF", "RT/F thermal voltage", "mV"},
	{"G_f", "total funny-current conductance", "uS"},
	{"b_up", "SERCA uptake modulation", "dimensionless"},
	{"g_Ks", "IKs conductance (modulated)", "uS"},
	{"ACh_shift", "If activation shift by ACh", "mV"},
	{"E_K", "K+ equilibrium potential", "mV"},
	{"g_f_K_base", "If K+ branch base conductance", "uS"},
	{"P_up", "SERCA uptake rate (modulated)", "mM/s"},
	{"Nor_shift", "If activation shift by noradrenaline", "mV"},
	{"g_f_Na_base", "If Na+ branch base conductance", "uS"},
	{"g_f_K", "If K+ branch conductance", "uS"},
	{"NaK_mod", "INaK noradrenaline scaling", "dimensionless"},
	{"g_f_Na", "If Na+ branch conductance", "uS"},
	{"k34", "NaCa exchanger k34 rate term", "dimensionless"},
	{"CaL_mod", "ICaL noradrenaline scaling", "dimensionless"},
	{"CaL_ACh_block", "ICaL ACh block fraction", "dimensionless"},
	{"dL_shift", "dL half-activation shift", "mV"},
	{"dL_slope_mod", "dL slope change", "percent"},
	{"V_cell", "cell volume", "uL"},
	{"V_sub", "subspace volume", "uL"},
	{"V_jsr", "junctional SR volume", "uL"},
	{"V_i", "myoplasm volume", "uL"},
	{"V_nsr", "network SR volume", "uL"},
	{"Ks_shift", "IKs activation shift", "mV"},
	{"alpha_a", "IKACh activation rate", "1/s"},
}

// deriveConstants fills slots 91..115 from the primary constants and the two
// modulator slots. Piecewise constants use first-true-wins branch selection;
// branch boundaries are strict (> 0, never >= 0) so a zero dose always takes
// the default branch.
func deriveConstants(c *[NumConstants]float64) {
	ach := c[idxACh]
	nor := c[idxNor]

	c[91] = c[0] * c[1] / c[2] // RT/F
	c[92] = c[16] / (c[13] / (c[13] + c[17]))

	// SERCA uptake modulation: noradrenaline wins over ACh.
	switch {
	case nor > 0.0:
		c[93] = -0.25
	case ach > 0.0:
		c[93] = (0.7 * ach) / (9.0e-5 + ach)
	default:
		c[93] = 0.0
	}

	if nor > 0.0 {
		c[94] = 1.2 * c[88]
	} else {
		c[94] = c[88]
	}

	if ach > 0.0 {
		c[95] = -1.0 - (9.898*math.Pow(ach, 0.618))/(math.Pow(ach, 0.618)+0.00122423)
	} else {
		c[95] = 0.0
	}

	c[96] = c[91] * math.Log(c[13]/c[12])
	c[97] = c[92] / (c[18] + 1.0)
	c[98] = c[61] * (1.0 - c[93])

	if nor > 0.0 {
		c[99] = 7.5
	} else {
		c[99] = 0.0
	}

	c[100] = c[18] * c[97]
	c[101] = (c[97] * c[13]) / (c[13] + c[17])

	if nor > 0.0 {
		c[102] = 1.2
	} else {
		c[102] = 1.0
	}

	c[103] = (c[100] * c[13]) / (c[13] + c[17])
	c[104] = c[11] / (c[33] + c[11])

	if nor > 0.0 {
		c[105] = 1.23
	} else {
		c[105] = 1.0
	}

	c[106] = (0.31 * ach) / (ach + 9.0e-5)

	if nor > 0.0 {
		c[107] = -8.0
	} else {
		c[107] = 0.0
	}
	if nor > 0.0 {
		c[108] = -27.0
	} else {
		c[108] = 0.0
	}

	// Compartment volumes from cell geometry.
	c[109] = 1.0e-9 * math.Pi * c[82] * c[82] * c[83]
	c[110] = 1.0e-9 * 2.0 * math.Pi * c[84] * (c[82] - c[84]/2.0) * c[83]
	c[111] = c[79] * c[109]
	c[112] = c[80]*c[109] - c[110]
	c[113] = c[81] * c[109]

	if nor > 0.0 {
		c[114] = -14.0
	} else {
		c[114] = 0.0
	}

	// IKACh activation rate. At ACh exactly zero the pow term vanishes and
	// the quotient below is +Inf, driving the first term to its zero limit;
	// the result is finite for all ACh >= 0 without a special case.
	c[115] = (3.5988-0.025641)/(1.0+1.2155e-6/math.Pow(ach, 1.6951)) + 0.025641
}
