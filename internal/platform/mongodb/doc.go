// Package mongodb provides MongoDB implementations of the store interfaces.
// Documents are keyed by the string form of their UUID, and a unique index
// on users.email enforces email uniqueness at write time.
package mongodb
