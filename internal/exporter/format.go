package exporter

import "fmt"

// formatOpenRate renders a normalized open rate fraction back to the percent
// string form the source export uses, e.g. 0.4321 -> "43.21%".
func formatOpenRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

// formatInt formats an integer cell value.
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
