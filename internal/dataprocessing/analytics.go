package dataprocessing

import (
	"sort"

	"campaignlens/pkg/contracts/domain"
)

// Summarize groups records by label and computes mean, median and count of
// the open rate per group. Only labels present in the data appear. Output
// rows are sorted by mean open rate descending with a stable sort, so ties
// keep the original grouping order (first appearance in the input).
func Summarize(records []domain.CampaignRecord) []domain.GroupSummary {
	grouped, order := groupRates(records)

	summaries := make([]domain.GroupSummary, 0, len(order))
	for _, label := range order {
		rates := grouped[label]
		summaries = append(summaries, domain.GroupSummary{
			Group:          label,
			MeanOpenRate:   mean(rates),
			MedianOpenRate: median(rates),
			CampaignCount:  len(rates),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].MeanOpenRate > summaries[j].MeanOpenRate
	})

	return summaries
}

// MedianOrder returns the groups present in the data sorted by per-group
// median open rate descending. This is the box plot category order and is
// computed independently of the summary's mean ordering; the two may
// legitimately disagree.
func MedianOrder(records []domain.CampaignRecord) []domain.GroupLabel {
	grouped, order := groupRates(records)

	sort.SliceStable(order, func(i, j int) bool {
		return median(grouped[order[i]]) > median(grouped[order[j]])
	})

	return order
}

// GroupRates returns the open rates belonging to one group, in input order.
func GroupRates(records []domain.CampaignRecord, label domain.GroupLabel) []float64 {
	var rates []float64
	for _, r := range records {
		if r.Group == label {
			rates = append(rates, r.OpenRate)
		}
	}
	return rates
}

// DescriptiveStats summarizes an open-rate selection for display alongside
// the (possibly group-filtered) row table.
type DescriptiveStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Describe computes descriptive statistics over the given records.
func Describe(records []domain.CampaignRecord) DescriptiveStats {
	if len(records) == 0 {
		return DescriptiveStats{}
	}

	rates := make([]float64, len(records))
	for i, r := range records {
		rates[i] = r.OpenRate
	}

	min, max := rates[0], rates[0]
	for _, v := range rates[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return DescriptiveStats{
		Count:  len(rates),
		Mean:   mean(rates),
		Median: median(rates),
		Min:    min,
		Max:    max,
	}
}

// groupRates buckets open rates by label, remembering first-appearance
// order so downstream sorts can stay stable against it.
func groupRates(records []domain.CampaignRecord) (map[domain.GroupLabel][]float64, []domain.GroupLabel) {
	grouped := make(map[domain.GroupLabel][]float64)
	var order []domain.GroupLabel

	for _, r := range records {
		if _, seen := grouped[r.Group]; !seen {
			order = append(order, r.Group)
		}
		grouped[r.Group] = append(grouped[r.Group], r.OpenRate)
	}

	return grouped, order
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Quantile(values, 0.5)
}
