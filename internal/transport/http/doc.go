// Package http contains the HTTP handlers for the dashboard API. Handlers
// translate between the wire format and the service layer; all error
// responses are RFC 7807 problem details emitted by the central error
// handler.
package http
