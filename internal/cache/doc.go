// Package cache provides a byte-bounded LRU cache for blob contents.
//
// The cache is keyed by blob name. Memory is accounted against an optional
// resource.Controller so that several caches can share one global budget.
package cache
