// Package api handles incoming HTTP requests for the task manager. Handlers
// decode JSON bodies, run them through the validation package, call the
// stores and write the success or failure envelope.
//
// Every error a handler meets is passed to HandleAPIError, which is the single
// place where error kinds become status codes and client-safe messages.
package api
