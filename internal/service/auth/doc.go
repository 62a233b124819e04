// Package auth issues and verifies bearer tokens and hashes account
// passwords.
package auth
