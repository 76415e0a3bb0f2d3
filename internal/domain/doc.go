// Package domain contains the core entities and value objects of the location
// worker: position samples, accuracy priorities and task outcomes. It has no
// knowledge of how positions are obtained or how the task is scheduled.
package domain
