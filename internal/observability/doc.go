// Package observability groups the infrastructure for understanding the
// system in production: structured logging and SLO tracking.
//
// Subpackages:
//   - logging: structured logging utilities with slog
//   - slo: service level objective gauges and the reporter that feeds them
//
// HTTP request metrics themselves live next to the middleware that records
// them, in internal/handler/http.
package observability
