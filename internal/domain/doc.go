// Package domain defines the core business entities of the task manager,
// users and their tasks, together with the closed set of error kinds that
// the rest of the application reports.
package domain
