// Package store defines interfaces for data persistence operations.
// These interfaces keep the worker independent of the database that backs
// capability grants.
package store
