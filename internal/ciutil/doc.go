// Package ciutil provides helpers for tests that need to behave consistently
// between developer machines and CI runners, chiefly locating the database
// used by integration tests.
package ciutil
