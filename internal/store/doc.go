// Package store defines persistence interfaces and shared persistence
// concerns (sentinel errors, the DBTX abstraction, transaction helpers) for
// the task service. Concrete implementations live under internal/platform.
package store
