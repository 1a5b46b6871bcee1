package analysis

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestFFTSingleTone(t *testing.T) {
	n := 256
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 8 * float64(i) / float64(n))
	}

	result := FFT(data)
	if len(result) != n {
		t.Fatalf("got %d bins, want %d", len(result), n)
	}

	// All energy should sit in bin 8 (and its mirror).
	peak := 0
	for k := 1; k < n/2; k++ {
		if cmplx.Abs(result[k]) > cmplx.Abs(result[peak]) {
			peak = k
		}
	}
	if peak != 8 {
		t.Errorf("peak at bin %d, want 8", peak)
	}
}

func TestPowerSpectrumLength(t *testing.T) {
	ps := PowerSpectrum(make([]float64, 128))
	if len(ps) != 64 {
		t.Errorf("got %d bins, want 64", len(ps))
	}
}

func TestDominantFrequency(t *testing.T) {
	// 1.25 Hz tone sampled at 100 Hz for 1024 samples.
	sampleRate := 100.0
	data := make([]float64, 1024)
	for i := range data {
		data[i] = 3.0 + math.Sin(2*math.Pi*1.25*float64(i)/sampleRate)
	}

	got := DominantFrequency(data, sampleRate)
	if math.Abs(got-1.25) > 0.1 {
		t.Errorf("dominant frequency = %v Hz, want about 1.25", got)
	}
}

func TestDominantFrequencyTruncatesToPowerOfTwo(t *testing.T) {
	sampleRate := 100.0
	data := make([]float64, 1000)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 2.0 * float64(i) / sampleRate)
	}
	got := DominantFrequency(data, sampleRate)
	if math.Abs(got-2.0) > 0.2 {
		t.Errorf("dominant frequency = %v Hz, want about 2", got)
	}
}

func TestRateFromTrace(t *testing.T) {
	// 75 bpm is 1.25 Hz.
	dt := 1e-3
	data := make([]float64, 4096)
	for i := range data {
		data[i] = -30 + 40*math.Sin(2*math.Pi*1.25*float64(i)*dt)
	}
	got := RateFromTrace(data, dt)
	if math.Abs(got-75.0) > 5.0 {
		t.Errorf("rate = %v bpm, want about 75", got)
	}

	if RateFromTrace(data, 0) != 0 {
		t.Error("rate with zero dt should be 0")
	}
}

func TestDominantFrequencyShortSignal(t *testing.T) {
	if got := DominantFrequency([]float64{1}, 100); got != 0 {
		t.Errorf("dominant frequency of a single sample = %v, want 0", got)
	}
}
