// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the HTTP layer, so handlers stay independent of whether records live
// in memory, PostgreSQL or MongoDB.
//
// Lookups of absent records are not errors: get, update and delete return
// a nil entity and a nil error, and callers decide what absence means.
package store
