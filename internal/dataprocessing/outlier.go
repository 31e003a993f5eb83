package dataprocessing

import (
	"sort"

	"campaignlens/pkg/contracts/domain"
)

// iqrMultiplier is the standard Tukey fence factor.
const iqrMultiplier = 1.5

// Quantile computes the q-quantile of values using the linear-interpolation
// method: position q*(n-1) between the sorted order statistics. values must
// be non-empty; the slice is not modified.
func Quantile(values []float64, q float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}

	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// ComputeBounds derives the IQR outlier fence over the full open-rate
// distribution. With zero variance the fence collapses onto the common
// value and nothing gets flagged.
func ComputeBounds(values []float64) domain.OutlierBounds {
	q1 := Quantile(values, 0.25)
	q3 := Quantile(values, 0.75)
	iqr := q3 - q1
	return domain.OutlierBounds{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - iqrMultiplier*iqr,
		Upper: q3 + iqrMultiplier*iqr,
	}
}

// FlagOutliers marks records strictly outside the dataset-wide fence and
// returns the bounds used. The fence is computed once over all records
// after normalization, never per group and never incrementally.
func FlagOutliers(records []domain.CampaignRecord) domain.OutlierBounds {
	if len(records) == 0 {
		return domain.OutlierBounds{}
	}

	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.OpenRate
	}

	bounds := ComputeBounds(values)
	for i := range records {
		rate := records[i].OpenRate
		records[i].IsOutlier = rate < bounds.Lower || rate > bounds.Upper
	}
	return bounds
}
