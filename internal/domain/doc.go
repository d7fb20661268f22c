// Package domain contains the core entities of the task service: tasks and
// the users who own them. Entities validate themselves; persistence and
// transport concerns live in the store and api packages respectively.
package domain
