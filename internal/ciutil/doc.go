// Package ciutil detects the execution environment and resolves the
// connection strings integration tests run against.
//
// Integration tests skip locally when no backend is configured, but a CI run
// without one is a configuration error and must fail loudly instead.
package ciutil
