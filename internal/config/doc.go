// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to the worker, positioning and permission settings while keeping
// configuration details separate from the task logic.
package config
