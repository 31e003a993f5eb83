package dataprocessing

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignlens/pkg/contracts/domain"
)

func TestBuildRecords(t *testing.T) {
	table, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	records, err := BuildRecords(table)
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "abc123", first.CampaignID)
	assert.Equal(t, "Wednesday Newsletter", first.Name)
	assert.Equal(t, "Midweek picks", first.Subject)
	assert.Equal(t, time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC), first.SendTime)
	assert.Equal(t, "2024-03-06", first.SendDate)
	assert.InDelta(t, 0.455, first.OpenRate, 1e-9)
	assert.Equal(t, domain.GroupWednesday, first.Group)
	assert.Equal(t, "https://www.klaviyo.com/campaign/abc123/reports/overview", first.CampaignURL)
	assert.False(t, first.IsOutlier)
}

func TestParseOpenRate_RoundTrip(t *testing.T) {
	// "NN.NN%" normalizes to NN.NN/100 within float tolerance.
	for _, raw := range []float64{0, 0.01, 12.34, 43.21, 99.99, 100} {
		s := fmt.Sprintf("%.2f%%", raw)
		got, err := parseOpenRate(s)
		require.NoError(t, err, s)
		assert.InDelta(t, raw/100, got, 1e-9, s)
	}
}

func TestParseOpenRate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing percent suffix", "43.21"},
		{"non-numeric remainder", "abc%"},
		{"bare text", "abc"},
		{"empty", ""},
		{"above hundred", "150.00%"},
		{"negative", "-5.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOpenRate(tt.in)
			assert.Error(t, err)
		})
	}
}

func TestParseSendTime(t *testing.T) {
	ts, err := parseSendTime("2024-03-06 09:15:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 6, 9, 15, 30, 0, time.UTC), ts)

	for _, bad := range []string{"2024-03-06", "06/03/2024 09:15", "not a time", ""} {
		_, err := parseSendTime(bad)
		assert.Error(t, err, bad)
	}
}

func TestBuildRecords_FieldFormatErrorNamesFieldAndRow(t *testing.T) {
	csv := `Campaign ID,Campaign Name,Subject,Send Time,Open Rate
a1,Monday One,Hi,2024-01-08 10:00:00,20.00%
a2,Monday Two,Hi,2024-01-15 10:00:00,abc
a3,Monday Three,Hi,2024-01-22 10:00:00,25.00%
`
	table, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)

	records, err := BuildRecords(table)
	require.Error(t, err)

	var ffe *FieldFormatError
	require.ErrorAs(t, err, &ffe)
	assert.Equal(t, "Open Rate", ffe.Field)
	assert.Equal(t, 3, ffe.Row)
	assert.Equal(t, "abc", ffe.Value)

	// The whole batch fails: zero output rows, not N-1 successes.
	assert.Nil(t, records)
}

func TestBuildRecords_BadTimestampAbortsBatch(t *testing.T) {
	csv := `Campaign ID,Campaign Name,Subject,Send Time,Open Rate
a1,Monday One,Hi,January 8th,20.00%
`
	table, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)

	_, err = BuildRecords(table)
	var ffe *FieldFormatError
	require.ErrorAs(t, err, &ffe)
	assert.Equal(t, "Send Time", ffe.Field)
	assert.Equal(t, 2, ffe.Row)
}
