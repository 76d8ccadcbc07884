package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrTooShort = errors.New("analysis: series too short")

// PowerSpectrum zero-pads data to a power of two after removing its mean
// and returns the magnitudes of the non-negative frequency bins together
// with the padded length.
func PowerSpectrum(data []float64) ([]float64, int, error) {
	if len(data) < 2 {
		return nil, 0, ErrTooShort
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	for i, v := range data {
		padded[i] = v - mean
	}

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps, n, nil
}

// DominantFrequency returns the frequency of the strongest non-zero bin of
// a series sampled every dt.
func DominantFrequency(data []float64, dt float64) (float64, error) {
	if !(dt > 0) {
		return 0, errors.New("analysis: sample spacing must be positive")
	}
	ps, n, err := PowerSpectrum(data)
	if err != nil {
		return 0, err
	}

	maxIdx := 0
	maxPower := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	return float64(maxIdx) / (float64(n) * dt), nil
}
