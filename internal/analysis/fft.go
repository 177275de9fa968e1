// Package analysis provides frequency and drift statistics over stored
// energy/temperature series.
package analysis

import (
	"math"
	"math/cmplx"
)

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

func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// DominantFrequency returns the frequency of the strongest non-DC bin in a
// half spectrum computed from n samples spaced dt apart.
func DominantFrequency(ps []float64, n int, dt float64) float64 {
	if len(ps) < 2 || n == 0 || dt <= 0 {
		return 0
	}
	peak := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	return float64(peak) / (float64(n) * dt)
}

// PadPow2 zero-pads data up to the next power-of-two length.
func PadPow2(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// SeriesStats summarizes one diagnostic series.
type SeriesStats struct {
	Mean     float64
	Std      float64
	Min      float64
	Max      float64
	MaxDrift float64 // max relative deviation from the first sample
}

func Describe(data []float64) SeriesStats {
	if len(data) == 0 {
		return SeriesStats{}
	}

	stats := SeriesStats{Min: data[0], Max: data[0]}
	for _, v := range data {
		stats.Mean += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean /= float64(len(data))

	for _, v := range data {
		d := v - stats.Mean
		stats.Std += d * d
	}
	stats.Std = math.Sqrt(stats.Std / float64(len(data)))

	if data[0] != 0 {
		for _, v := range data {
			drift := math.Abs(v-data[0]) / math.Abs(data[0])
			stats.MaxDrift = math.Max(stats.MaxDrift, drift)
		}
	}

	return stats
}
