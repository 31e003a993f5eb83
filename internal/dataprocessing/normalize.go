package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"campaignlens/pkg/contracts/domain"
)

const (
	// SendTimeLayout is the raw Send Time pattern in uploads.
	SendTimeLayout = "2006-01-02 15:04:05"
	// SendDateLayout is the calendar date retained per record.
	SendDateLayout = "2006-01-02"
)

// BuildRecords converts the raw table into typed campaign records: Send Time
// becomes a timestamp with the date component retained separately, the Open
// Rate percentage string becomes a fraction in [0, 1], and the group label
// and reference URL are derived. Any pattern failure aborts the whole batch
// with a FieldFormatError; skipping rows would silently skew the aggregates.
func BuildRecords(table *RawTable) ([]domain.CampaignRecord, error) {
	records := make([]domain.CampaignRecord, 0, table.Len())

	for i := 0; i < table.Len(); i++ {
		// Row numbers are 1-based and count the header row.
		rowNum := i + 2

		sendTime, err := parseSendTime(table.Value(i, "Send Time"))
		if err != nil {
			return nil, &FieldFormatError{Field: "Send Time", Row: rowNum, Value: table.Value(i, "Send Time"), Err: err}
		}

		openRate, err := parseOpenRate(table.Value(i, "Open Rate"))
		if err != nil {
			return nil, &FieldFormatError{Field: "Open Rate", Row: rowNum, Value: table.Value(i, "Open Rate"), Err: err}
		}

		name := table.Value(i, "Campaign Name")
		id := table.Value(i, "Campaign ID")

		records = append(records, domain.CampaignRecord{
			CampaignID:  id,
			Name:        name,
			Subject:     table.Value(i, "Subject"),
			SendTime:    sendTime,
			SendDate:    sendTime.Format(SendDateLayout),
			OpenRate:    openRate,
			Group:       Categorize(name),
			CampaignURL: CampaignURL(id),
		})
	}

	return records, nil
}

// parseOpenRate converts a percentage string like "43.21%" to 0.4321.
func parseOpenRate(raw string) (float64, error) {
	if !strings.HasSuffix(raw, "%") {
		return 0, fmt.Errorf("missing %% suffix")
	}
	value, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric percentage: %w", err)
	}
	rate := value / 100
	if rate < 0 || rate > 1 {
		return 0, fmt.Errorf("open rate %v outside [0%%, 100%%]", value)
	}
	return rate, nil
}

// parseSendTime parses the fixed "YYYY-MM-DD HH:MM:SS" pattern.
func parseSendTime(raw string) (time.Time, error) {
	t, err := time.Parse(SendTimeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp does not match %q", SendTimeLayout)
	}
	return t, nil
}
