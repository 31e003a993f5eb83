// Package dataprocessing implements the campaign analysis pipeline.
//
// One uploaded file flows through five sequential stages: parse the raw
// table, normalize the percentage and timestamp fields, categorize each
// campaign by name, aggregate per-group open-rate statistics, and flag
// IQR outliers over the whole dataset. The stages are pure with respect to
// their inputs and the resulting Dataset is immutable once built.
//
// Malformed input fails the entire run. Rows are never skipped or coerced:
// the aggregates (means, medians, outlier bounds) are only trustworthy when
// they cover every row the user uploaded.
package dataprocessing
