package services

import "errors"

// Sentinel errors returned by the dashboard service.
var (
	// ErrEmptyDataset is returned when an upload parses cleanly but holds no
	// campaign rows.
	ErrEmptyDataset = errors.New("dataset contains no campaign rows")

	// ErrUnknownGroup is returned when a filter names a group label that does
	// not exist.
	ErrUnknownGroup = errors.New("unknown campaign group")

	// ErrUnsupportedFormat is returned when an upload's extension maps to no
	// known input format.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)
