// Package exporter writes the analyzed campaign tables as CSV and XLSX
// report files for the one-shot CLI.
package exporter
