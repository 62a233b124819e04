// Package memory implements the store interfaces on mutex-guarded maps.
// It is the default backend and keeps nothing across restarts.
package memory
