package domain

import (
	"time"
)

// GroupLabel is the derived campaign category assigned from keyword
// presence in the campaign name. The set of labels is closed.
type GroupLabel string

const (
	GroupWednesday GroupLabel = "Wednesday Campaign"
	GroupFriday    GroupLabel = "Friday Campaign"
	GroupMonday    GroupLabel = "Monday Campaign"
	GroupMonthly   GroupLabel = "Monthly Campaign"
	GroupOther     GroupLabel = "Other"
)

// AllGroups returns the closed label set in rule-priority order.
func AllGroups() []GroupLabel {
	return []GroupLabel{
		GroupWednesday,
		GroupFriday,
		GroupMonday,
		GroupMonthly,
		GroupOther,
	}
}

// Valid reports whether the label belongs to the closed set.
func (g GroupLabel) Valid() bool {
	switch g {
	case GroupWednesday, GroupFriday, GroupMonday, GroupMonthly, GroupOther:
		return true
	}
	return false
}

// CampaignRecord is one campaign send with its derived fields. Records are
// built during normalization and never mutated after the pipeline completes.
type CampaignRecord struct {
	CampaignID  string     `json:"campaign_id" csv:"Campaign ID" validate:"required"`
	Name        string     `json:"campaign_name" csv:"Campaign Name"`
	Subject     string     `json:"subject" csv:"Subject"`
	SendTime    time.Time  `json:"send_time" csv:"Send Time"`
	SendDate    string     `json:"send_date" csv:"Send Date"`
	OpenRate    float64    `json:"open_rate" csv:"Open Rate" validate:"gte=0,lte=1"`
	Group       GroupLabel `json:"campaign_group" csv:"Campaign Group"`
	IsOutlier   bool       `json:"is_outlier" csv:"Is Outlier"`
	CampaignURL string     `json:"campaign_url" csv:"Campaign URL"`
}

// GroupSummary aggregates the open rates of one campaign group. It is a
// view over the records, recomputed whenever the dataset changes.
type GroupSummary struct {
	Group          GroupLabel `json:"campaign_group" csv:"Campaign Group"`
	MeanOpenRate   float64    `json:"mean_open_rate" csv:"Mean Open Rate"`
	MedianOpenRate float64    `json:"median_open_rate" csv:"Median Open Rate"`
	CampaignCount  int        `json:"campaign_count" csv:"Campaign Count"`
}

// OutlierBounds holds the IQR fence computed once over the whole dataset's
// open-rate distribution, never per group.
type OutlierBounds struct {
	Q1    float64 `json:"q1"`
	Q3    float64 `json:"q3"`
	IQR   float64 `json:"iqr"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Dataset is the complete result of one pipeline run. It is an explicit
// value handed to the presentation layer and discarded with the session;
// there is no cross-session state.
type Dataset struct {
	Records      []CampaignRecord `json:"records"`
	Summaries    []GroupSummary   `json:"summaries"`
	BoxPlotOrder []GroupLabel     `json:"box_plot_order"`
	Bounds       OutlierBounds    `json:"bounds"`
}

// SummaryOrder returns the canonical category display order: summary rows
// sorted by mean open rate descending. Bar charts follow this order.
func (d *Dataset) SummaryOrder() []GroupLabel {
	order := make([]GroupLabel, 0, len(d.Summaries))
	for _, s := range d.Summaries {
		order = append(order, s.Group)
	}
	return order
}

// RowTableColumns is the row-level output table column order.
var RowTableColumns = []string{
	"Campaign Group",
	"Campaign Name",
	"Subject",
	"Open Rate",
	"Send Date",
	"Campaign URL",
}

// SummaryTableColumns is the group-summary output table column order.
var SummaryTableColumns = []string{
	"Campaign Group",
	"Mean Open Rate",
	"Median Open Rate",
	"Campaign Count",
}
