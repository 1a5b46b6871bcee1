// Package analysis provides spectral analysis of simulated voltage traces.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of a real signal by radix-2
// decimation. The input length must be a power of two.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum returns spectral magnitudes up to the Nyquist frequency.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantFrequency returns the frequency, in Hz, of the strongest non-DC
// spectral component of a signal sampled at sampleRate. The signal is
// mean-subtracted and truncated to the largest power-of-two length.
func DominantFrequency(signal []float64, sampleRate float64) float64 {
	n := 1
	for n*2 <= len(signal) {
		n *= 2
	}
	if n < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range signal[:n] {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i := 0; i < n; i++ {
		centered[i] = signal[i] - mean
	}

	ps := PowerSpectrum(centered)
	if len(ps) < 2 {
		return 0
	}
	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	return float64(best) * sampleRate / float64(n)
}

// RateFromTrace estimates the firing rate in beats per minute from a voltage
// trace via its dominant spectral frequency.
func RateFromTrace(voltage []float64, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return 60.0 * DominantFrequency(voltage, 1.0/dt)
}
