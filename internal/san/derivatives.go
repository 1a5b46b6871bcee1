package san

import "math"

// derive evaluates the 33 state derivatives at (t, y) for the given constant
// vector. Intermediates follow the dependency order of the published model.
// The caller owns y; nothing here retains it, and the result is freshly
// allocated on every call.
func derive(c *[NumConstants]float64, t float64, y []float64) []float64 {
	dydt := make([]float64, NumStates)

	// Mg2+ buffering on the troponin-Mg site.
	dfTMM := c[69]*c[78]*(1.0-(y[22]+y[18])) - c[75]*y[18]
	dydt[18] = dfTMM

	// Ca-dependent inactivation of ICaL.
	fCaInf := c[47] / (c[47] + y[1])
	tauFCa := (0.001 * fCaInf) / c[46]
	dydt[8] = (fCaInf - y[8]) / tauFCa

	// SR Ca release: RyR gating modulated by junctional SR load.
	kCaSR := c[51] - (c[51]-c[52])/(1.0+math.Pow(c[53]/y[15], c[54]))
	koSRCa := c[55] / kCaSR
	kiSRCa := c[56] * kCaSR
	dydt[11] = (c[57]*y[14] - kiSRCa*y[1]*y[11]) - (koSRCa*y[1]*y[1]*y[11] - c[58]*y[12])
	dydt[12] = (koSRCa*y[1]*y[1]*y[11] - c[58]*y[12]) - (kiSRCa*y[1]*y[12] - c[57]*y[13])
	dydt[13] = (kiSRCa*y[1]*y[12] - c[57]*y[13]) - (c[58]*y[13] - koSRCa*y[1]*y[1]*y[14])
	dydt[14] = (c[58]*y[13] - koSRCa*y[1]*y[1]*y[14]) - (c[57]*y[14] - kiSRCa*y[1]*y[11])

	// Membrane drive: the test potential within [onset, onset+duration),
	// the holding potential outside it; clamp mode >= 1 selects the clamp,
	// otherwise the model's own membrane potential drives the rates.
	var clampV float64
	if t >= c[5] && t < c[5]+c[6] {
		clampV = c[7]
	} else {
		clampV = c[8]
	}
	var v float64
	if c[4] >= 1.0 {
		v = clampV
	} else {
		v = y[0]
	}

	// Funny current activation.
	tauY := 1.0/((0.36*(((v+148.8)-c[95])-c[99]))/(math.Exp(0.066*(((v+148.8)-c[95])-c[99]))-1.0)+
		(0.1*(((v+87.3)-c[95])-c[99]))/(1.0-math.Exp(-0.2*(((v+87.3)-c[95])-c[99])))) - 0.054
	var yInf float64
	if v < -(((80.0-c[95])-c[99])-c[20]) {
		yInf = 0.01329 + 0.99921/(1.0+math.Exp(((((v+97.134)-c[95])-c[99])-c[20])/8.1752))
	} else {
		yInf = 0.0002501 * math.Exp(-(((v-c[95])-c[99])-c[20])/12.861)
	}
	dydt[3] = (yInf - y[3]) / tauY

	// ICaL voltage-dependent inactivation.
	fLInf := 1.0 / (1.0 + math.Exp((v+37.4+c[44])/(5.3+c[45])))
	tauFL := 0.001 * (44.3 + 230.0*math.Exp(-math.Pow((v+36.0)/10.0, 2.0)))
	dydt[7] = (fLInf - y[7]) / tauFL

	// ICaT gating.
	dTInf := 1.0 / (1.0 + math.Exp(-(v+38.3)/5.5))
	tauDT := 0.001 / (1.068*math.Exp((v+38.3)/30.0) + 1.068*math.Exp(-(v+38.3)/30.0))
	dydt[9] = (dTInf - y[9]) / tauDT
	fTInf := 1.0 / (1.0 + math.Exp((v+58.7)/3.8))
	tauFT := 1.0/(16.67*math.Exp(-(v+75.0)/83.3)+16.67*math.Exp((v+75.0)/15.38)) + c[49]
	dydt[10] = (fTInf - y[10]) / tauFT

	// IKur gating.
	tauRKur := 0.009/(1.0+math.Exp((v+5.0)/12.0)) + 0.0005
	rKurInf := 1.0 / (1.0 + math.Exp((v+6.0)/-8.6))
	dydt[24] = (rKurInf - y[24]) / tauRKur
	tauSKur := 0.59/(1.0+math.Exp((v+60.0)/10.0)) + 3.05
	sKurInf := 1.0 / (1.0 + math.Exp((v+7.5)/10.0))
	dydt[25] = (sKurInf - y[25]) / tauSKur

	// Ito gating.
	qInf := 1.0 / (1.0 + math.Exp((v+49.0)/13.0))
	tauQ := 0.001 * 0.6 * (65.17/(0.57*math.Exp(-0.08*(v+44.0))+0.065*math.Exp(0.1*(v+45.93))) + 10.1)
	dydt[26] = (qInf - y[26]) / tauQ
	rInf := 1.0 / (1.0 + math.Exp(-(v-19.3)/15.0))
	tauR := 0.001 * 0.66 * 1.4 * (15.59/(1.037*math.Exp(0.09*(v+30.61))+0.369*math.Exp(-0.12*(v+23.84))) + 2.98)
	dydt[27] = (rInf - y[27]) / tauR

	// IKr gating: shared activation curve, slow and fast time constants.
	paInf := 1.0 / (1.0 + math.Exp(-(v+10.0144)/7.6607))
	tauPaS := 0.846554 / (4.2*math.Exp(v/17.0) + 0.15*math.Exp(-v/21.6))
	dydt[28] = (paInf - y[28]) / tauPaS
	tauPaF := 1.0 / (30.0*math.Exp(v/10.0) + math.Exp(-v/12.0))
	dydt[29] = (paInf - y[29]) / tauPaF
	piyInf := 1.0 / (1.0 + math.Exp((v+28.6)/17.1))
	tauPiy := 1.0 / (100.0*math.Exp(-v/54.645) + 656.0*math.Exp(v/106.157))
	dydt[30] = (piyInf - y[30]) / tauPiy

	// IKACh gating.
	betaA := 10.0 * math.Exp(0.0133*(v+40.0))
	aInf := c[115] / (c[115] + betaA)
	tauA := 1.0 / (c[115] + betaA)
	dydt[32] = (aInf - y[32]) / tauA

	// INa inactivation.
	hInf := 1.0 / (1.0 + math.Exp((v+69.804)/4.4565))
	alphaH := 20.0 * math.Exp(-0.125*(v+75.0))
	betaH := 2000.0 / (320.0*math.Exp(-0.1*(v+75.0)) + 1.0)
	tauH := 1.0 / (alphaH + betaH)
	dydt[5] = (hInf - y[5]) / tauH

	// IKs gating.
	nInf := math.Sqrt(1.0 / (1.0 + math.Exp(-((v+0.6383)-c[114])/10.7071)))
	alphaN := 28.0 / (1.0 + math.Exp(-((v-40.0)-c[114])/3.0))
	betaN := 1.0 * math.Exp(-((v-c[114])-5.0)/25.0)
	tauN := 1.0 / (alphaN + betaN)
	dydt[31] = (nInf - y[31]) / tauN

	// INa activation. alphaM has a removable singularity at v = -41; within
	// delta_m of it the limiting value 2000 applies.
	mInf := 1.0 / (1.0 + math.Exp(-(v+42.0504)/8.3106))
	vm := v + 41.0
	var alphaM float64
	if math.Abs(vm) < c[40] {
		alphaM = 2000.0
	} else {
		alphaM = (200.0 * vm) / (1.0 - math.Exp(-0.1*vm))
	}
	betaM := 8000.0 * math.Exp(-0.056*(v+66.0))
	tauM := 1.0 / (alphaM + betaM)
	dydt[4] = (mInf - y[4]) / tauM

	// ICaL activation. The rate expressions are 0/0 at exactly -41.8, -6.8
	// and -1.8 mV; those voltages are nudged before evaluation.
	dLInf := 1.0 / (1.0 + math.Exp(-((v-c[43])-c[107])/(c[42]*(1.0+c[108]/100.0))))
	adVm := v
	switch v {
	case -41.8:
		adVm = -41.80001
	case 0.0:
		adVm = 0.0
	case -6.8:
		adVm = -6.80001
	}
	alphaDL := (-0.02839*(adVm+41.8))/(math.Exp(-(adVm+41.8)/2.5)-1.0) -
		(0.0849*(adVm+6.8))/(math.Exp(-(adVm+6.8)/4.8)-1.0)
	bdVm := v
	if v == -1.8 {
		bdVm = -1.80001
	}
	betaDL := (0.01143 * (bdVm + 1.8)) / (math.Exp((bdVm+1.8)/2.5) - 1.0)
	tauDL := 0.001 / (alphaDL + betaDL)
	dydt[6] = (dLInf - y[6]) / tauDL

	// Na+-dependent reversal potentials and the NaK pump.
	nai := y[2]
	eNa := c[91] * math.Log(c[11]/nai)
	iNaK := c[102] * c[23] * math.Pow(1.0+math.Pow(c[21]/c[13], 1.2), -1.0) *
		math.Pow(1.0+math.Pow(c[22]/nai, 1.3), -1.0) *
		math.Pow(1.0+math.Exp(-((v-eNa)+110.0)/20.0), -1.0)

	// NaCa exchanger: six-state cycle rates and the four cycle products.
	k41 := math.Exp((-c[26] * v) / (2.0 * c[91]))
	doo := 1.0 + (c[14]/c[36])*(1.0+math.Exp((c[27]*v)/c[91])) +
		(c[11]/c[34])*(1.0+(c[11]/c[35])*(1.0+c[11]/c[33]))
	k23 := ((((c[11] / c[34]) * c[11]) / c[35]) * (1.0 + c[11]/c[33]) *
		math.Exp((-c[26]*v)/(2.0*c[91]))) / doo
	k21 := ((c[14] / c[36]) * math.Exp((c[27]*v)/c[91])) / doo
	k32 := math.Exp((c[26] * v) / (2.0 * c[91]))
	k43 := nai / (c[28] + nai)
	x1 := k41*c[104]*(k23+k21) + k21*k32*(k43+k41)
	di := 1.0 + (y[1]/c[29])*(1.0+math.Exp((-c[25]*v)/c[91])+nai/c[32]) +
		(nai/c[30])*(1.0+(nai/c[31])*(1.0+nai/c[28]))
	k12 := ((y[1] / c[29]) * math.Exp((-c[25]*v)/c[91])) / di
	k14 := ((((nai / c[30]) * nai) / c[31]) * (1.0 + nai/c[28]) *
		math.Exp((c[26]*v)/(2.0*c[91]))) / di
	x2 := k32*k43*(k14+k12) + k41*k12*(c[104]+k32)
	x3 := k14*k43*(k23+k21) + k12*k23*(k43+k41)
	x4 := k23*c[104]*(k14+k12) + k14*k21*(c[104]+k32)
	iNaCa := ((1.0 - c[37]) * c[24] * (x2*k21 - x1*k12)) / (x1 + x2 + x3 + x4)

	// INa with the combined Na/K reversal potential.
	eMh := c[91] * math.Log((c[11]+0.12*c[13])/(nai+0.12*c[12]))
	iNa := c[38] * math.Pow(y[4], 3.0) * y[5] * (v - eMh)
	iNaL := c[39] * math.Pow(y[4], 3.0) * (v - eMh)
	iNaTot := iNa + iNaL

	ifNa := y[3] * c[103] * (v - eNa) * (1.0 - c[19])

	// GHK flux terms are 0/0 at exactly 0 mV; nudge before evaluation.
	vg := v
	if vg == 0.0 {
		vg = 1e-5
	}
	iCaLNa := ((1.85e-5 * c[41] * vg) / (c[91] * (1.0 - math.Exp(-vg/c[91])))) *
		(nai - c[11]*math.Exp(-vg/c[91])) * y[6] * y[7] * y[8]
	dydt[2] = ((1.0 - c[15]) * -1.0 * (iNaTot + ifNa + iCaLNa + 3.0*iNaK + 3.0*iNaCa)) /
		((c[112] + c[110]) * c[2])

	// Subspace Ca2+ balance.
	dfCMs := c[71]*y[1]*(1.0-y[20]) - c[76]*y[20]
	dydt[20] = dfCMs
	iCaT := ((2.0 * c[48] * vg) / (c[91] * (1.0 - math.Exp((-2.0*vg)/c[91])))) *
		(y[1] - c[14]*math.Exp((-2.0*vg)/c[91])) * y[9] * y[10]
	iCaLCa := ((2.0 * c[41] * vg) / (c[91] * (1.0 - math.Exp((-2.0*vg)/c[91])))) *
		(y[1] - c[14]*math.Exp((-2.0*vg)/c[91])) * y[6] * y[7] * y[8]
	jSRCarel := c[50] * y[12] * (y[15] - y[1])
	jCaDif := (y[1] - y[17]) / c[59]
	dydt[1] = (jSRCarel*c[111])/c[110] -
		(((iCaLCa+iCaT)-2.0*iNaCa)/(2.0*c[2]*c[110]) + jCaDif + c[66]*dfCMs)

	// Myoplasmic and SR Ca2+ balances with buffering.
	dfTC := c[68]*y[17]*(1.0-y[21]) - c[73]*y[21]
	dydt[21] = dfTC
	jUp := c[98] / (1.0 + math.Exp((-y[17]+c[62])/c[63]))
	jTr := (y[16] - y[15]) / c[60]
	dydt[16] = jUp - (jTr*c[111])/c[113]
	dfTMC := c[70]*y[17]*(1.0-(y[22]+y[18])) - c[74]*y[22]
	dydt[22] = dfTMC
	dfCQ := c[72]*y[15]*(1.0-y[23]) - c[77]*y[23]
	dydt[23] = dfCQ
	dydt[15] = jTr - (jSRCarel + c[67]*dfCQ)
	dfCMi := c[71]*y[17]*(1.0-y[19]) - c[76]*y[19]
	dydt[19] = dfCMi
	dydt[17] = (jCaDif*c[110]-jUp*c[113])/c[112] -
		(c[66]*dfCMi + c[64]*dfTC + c[65]*dfTMC)

	// Remaining membrane currents.
	ifK := y[3] * c[101] * (v - c[96]) * (1.0 - c[19])
	iF := ifNa + ifK
	iKr := c[87] * (v - c[96]) * (0.9*y[29] + 0.1*y[28]) * y[30]
	eKs := c[91] * math.Log((c[13]+0.12*c[11])/(c[12]+0.12*nai))
	iKs := c[94] * (v - eKs) * math.Pow(y[31], 2.0)
	iTo := c[86] * (v - c[96]) * y[26] * y[27]
	iCaLK := ((0.000365 * c[41] * vg) / (c[91] * (1.0 - math.Exp(-vg/c[91])))) *
		(c[12] - c[13]*math.Exp(-vg/c[91])) * y[6] * y[7] * y[8]
	iCaL := (iCaLCa + iCaLK + iCaLNa) * (1.0 - c[106]) * c[105]
	var iKACh float64
	if c[idxACh] > 0.0 {
		iKACh = c[90] * c[89] * (v - c[96]) * (1.0 + math.Exp((v+20.0)/20.0)) * y[32]
	}
	iKur := c[85] * y[24] * y[25] * (v - c[96])

	// Total membrane current and the voltage derivative.
	iTot := iF + iKr + iKs + iTo + iNaK + iNaCa + iNaTot + iCaL + iCaT + iKACh + iKur
	dydt[0] = -iTot / c[3]

	return dydt
}
