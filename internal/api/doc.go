// Package api exposes the scheduler over HTTP: listing registrations and
// triggering an invocation on demand. It translates scheduler errors into
// status codes without leaking internal details.
package api
