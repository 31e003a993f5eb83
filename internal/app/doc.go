// Package app wires the dashboard server together: configuration, logging,
// OpenTelemetry, services, router, and the HTTP server lifecycle.
package app
