package domain

// Marker styling applied by the chart frontend. Regular scatter points are
// drawn without a border; outliers get a larger marker with a dark border.
const (
	ScatterMarkerSize      = 8
	ScatterOutlierSize     = 12
	ScatterOutlierBorderPx = 2
	ScatterOutlierBorder   = "#1f1f1f"
	ScatterOutlierSymbol   = "diamond"
)

// BarChart is the mean-open-rate-per-group chart payload. Categories follow
// the group-summary order (mean descending).
type BarChart struct {
	Title      string       `json:"title"`
	Categories []GroupLabel `json:"categories"`
	Values     []float64    `json:"values"`
}

// BoxPlotSeries is one group's open-rate distribution.
type BoxPlotSeries struct {
	Group  GroupLabel `json:"group"`
	Values []float64  `json:"values"`
	Median float64    `json:"median"`
}

// BoxPlot is the per-group distribution chart payload. Series are ordered
// by per-group median descending, which is computed independently of the
// bar chart's mean ordering and may differ from it.
type BoxPlot struct {
	Title  string          `json:"title"`
	Series []BoxPlotSeries `json:"series"`
}

// ScatterPoint is one campaign send in the open-rate-vs-date chart.
type ScatterPoint struct {
	SendDate  string     `json:"send_date"`
	OpenRate  float64    `json:"open_rate"`
	Group     GroupLabel `json:"group"`
	IsOutlier bool       `json:"is_outlier"`
}

// ScatterPlot is the open rate over time chart payload with outliers
// visually distinguished.
type ScatterPlot struct {
	Title  string         `json:"title"`
	Points []ScatterPoint `json:"points"`
}

// Charts bundles every chart payload derived from one dataset.
type Charts struct {
	Bar     BarChart    `json:"bar"`
	Box     BoxPlot     `json:"box"`
	Scatter ScatterPlot `json:"scatter"`
}
