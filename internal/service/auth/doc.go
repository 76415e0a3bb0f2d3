// Package auth issues and validates the bearer tokens that guard the
// worker's HTTP trigger.
package auth
