// Package task runs the recurring location task.
//
// LocationTask is the unit of work: one invocation checks the coarse-location
// grant, dispatches a single asynchronous position request and reports an
// outcome without waiting for the position. Scheduler owns the recurring
// side: unique named registrations, periodic dispatch through an
// InvocationQueue and a WorkerPool, single-instance execution per name, and
// on-demand invocations.
package task
