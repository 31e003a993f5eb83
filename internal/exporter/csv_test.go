package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignlens/pkg/contracts/domain"
)

func sampleRecords() []domain.CampaignRecord {
	return []domain.CampaignRecord{
		{
			CampaignID:  "abc123",
			Name:        "Wednesday Newsletter",
			Subject:     "Midweek update",
			SendDate:    "2024-03-06",
			OpenRate:    0.455,
			Group:       domain.GroupWednesday,
			CampaignURL: "https://www.klaviyo.com/campaign/abc123/reports/overview",
		},
		{
			CampaignID:  "def456",
			Name:        "Friday Flash Sale",
			Subject:     "Weekend deals",
			SendDate:    "2024-03-08",
			OpenRate:    0.3825,
			Group:       domain.GroupFriday,
			CampaignURL: "https://www.klaviyo.com/campaign/def456/reports/overview",
		},
	}
}

func sampleSummaries() []domain.GroupSummary {
	return []domain.GroupSummary{
		{Group: domain.GroupWednesday, MeanOpenRate: 0.455, MedianOpenRate: 0.455, CampaignCount: 1},
		{Group: domain.GroupFriday, MeanOpenRate: 0.3825, MedianOpenRate: 0.3825, CampaignCount: 1},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "file should start with a UTF-8 BOM")
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteRows(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	path, err := w.WriteRows("campaigns.csv", sampleRecords())
	require.NoError(t, err)

	rows := readCSV(t, path)
	require.Len(t, rows, 3)

	assert.Equal(t, domain.RowTableColumns, rows[0])
	assert.Equal(t, []string{
		"Wednesday Campaign",
		"Wednesday Newsletter",
		"Midweek update",
		"45.50%",
		"2024-03-06",
		"https://www.klaviyo.com/campaign/abc123/reports/overview",
	}, rows[1])
	assert.Equal(t, "38.25%", rows[2][3])
}

func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	path, err := w.WriteSummary("summary.csv", sampleSummaries())
	require.NoError(t, err)

	rows := readCSV(t, path)
	require.Len(t, rows, 3)

	assert.Equal(t, domain.SummaryTableColumns, rows[0])
	assert.Equal(t, []string{"Wednesday Campaign", "45.50%", "45.50%", "1"}, rows[1])
	assert.Equal(t, []string{"Friday Campaign", "38.25%", "38.25%", "1"}, rows[2])
}

func TestWriteRows_EmptyDataset(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	path, err := w.WriteRows("empty.csv", nil)
	require.NoError(t, err)

	rows := readCSV(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.RowTableColumns, rows[0])
}

func TestFormatOpenRate(t *testing.T) {
	assert.Equal(t, "43.21%", formatOpenRate(0.4321))
	assert.Equal(t, "0.00%", formatOpenRate(0))
	assert.Equal(t, "100.00%", formatOpenRate(1))
	assert.Equal(t, "13.40%", formatOpenRate(0.134))
}
