package valuation

import (
	"math"
	"slices"
)

// median of a non-empty set of values.
func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// removeOutliersWithVolume drops price observations outside the band
// median*(1±threshold), keeping volumes aligned with their prices.
// Fewer than 3 observations pass through unchanged (too small a sample
// to judge), and if the band would reject every observation the
// original lists are returned instead: a non-empty input never
// filters down to nothing.
func removeOutliersWithVolume(prices []float64, volumes []int64, threshold float64) ([]float64, []int64) {
	if len(prices) < 3 {
		return prices, volumes
	}

	m := median(prices)
	lo := m * (1 - threshold)
	hi := m * (1 + threshold)

	var keptPrices []float64
	var keptVolumes []int64
	for i, p := range prices {
		if p >= lo && p <= hi {
			keptPrices = append(keptPrices, p)
			keptVolumes = append(keptVolumes, volumes[i])
		}
	}

	if len(keptPrices) == 0 {
		return prices, volumes
	}
	return keptPrices, keptVolumes
}

// volumeWeightedPrice computes the volume-weighted average of prices.
// When no observation carries positive volume it degrades to the
// arithmetic mean.
func volumeWeightedPrice(prices []float64, volumes []int64) float64 {
	var totalVolume int64
	for _, v := range volumes {
		if v > 0 {
			totalVolume += v
		}
	}

	if totalVolume == 0 {
		var sum float64
		for _, p := range prices {
			sum += p
		}
		return sum / float64(len(prices))
	}

	var weighted float64
	for i, p := range prices {
		if volumes[i] > 0 {
			weighted += p * float64(volumes[i])
		}
	}
	return weighted / float64(totalVolume)
}

// round2 rounds to 2 decimal places for presentation.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
