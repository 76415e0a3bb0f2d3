// Package location acquires a single approximate position asynchronously.
//
// A Sampler issues one request per Fetch call and returns a Pending handle
// immediately. Results are delivered to listeners registered on the handle.
// Every request is bound to a Scope; cancelling the scope before the request
// completes suppresses all listeners.
package location
