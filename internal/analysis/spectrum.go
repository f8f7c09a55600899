package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrShortSeries = errors.New("analysis: series needs at least 4 samples")

// PowerSpectrum returns the one-sided magnitude spectrum of series after
// removing its mean. Bin k is k * rate / len(series) Hz.
func PowerSpectrum(series []float64) ([]float64, error) {
	if len(series) < 4 {
		return nil, ErrShortSeries
	}
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	bins := fft.FFTReal(centered)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps, nil
}

// Peak is the strongest non-constant component of a spectrum.
type Peak struct {
	Bin       int
	Frequency float64
	Period    float64
	Power     float64
}

// Dominant finds the strongest bin above DC. n is the series length and
// rate its sample rate in Hz. A flat spectrum gives the zero Peak.
func Dominant(ps []float64, n int, rate float64) Peak {
	var p Peak
	for i := 1; i < len(ps); i++ {
		if ps[i] > p.Power {
			p.Bin, p.Power = i, ps[i]
		}
	}
	if p.Bin == 0 || n == 0 {
		return Peak{}
	}
	p.Frequency = float64(p.Bin) * rate / float64(n)
	if p.Frequency > 0 {
		p.Period = 1 / p.Frequency
	}
	return p
}

// SampleRate is the mean frame rate implied by a series of frame times.
func SampleRate(dts []float64) float64 {
	total := 0.0
	for _, dt := range dts {
		total += dt
	}
	if total <= 0 {
		return 0
	}
	return float64(len(dts)) / total
}
