// Package validation sanitizes and constrains inbound payloads for user
// registration, login, and task create/update, and performs the per-resource
// ownership check.
//
// Field tracks whether each JSON member was present and well typed; the
// value rules live in validate struct tags checked by go-playground/validator.
// Rules are evaluated collect-all: each failing member contributes one
// message, and all messages are reported together in a single
// *domain.ValidationError.
package validation
