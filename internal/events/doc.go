// Package events carries location samples from the asynchronous sampling
// callback to the sinks that render them.
//
// The primary components are:
// - LocationSampleEvent: one resolved sample together with the invocation it belongs to
// - EventHandler: interface for sinks that process events
// - EventEmitter: interface for components that publish events
// - ConsoleHandler and LogHandler: the human-readable and structured sinks
package events
