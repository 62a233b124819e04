// Package middleware provides the HTTP middleware of the API: request
// tracing, Prometheus instrumentation and bearer-token authentication.
package middleware
