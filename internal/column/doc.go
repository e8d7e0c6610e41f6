// Package column holds the fixed set of column names a store accepts.
//
// A Registry is built once when a store is opened and never changes
// afterwards, so lookups need no locking.
package column
