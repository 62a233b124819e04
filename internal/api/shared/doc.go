// Package shared holds the request and response plumbing used by both the
// API handlers and the middleware: context keys, trace IDs, JSON decoding
// and the response envelopes.
package shared
