// Package cache memoizes the public Analyze entry point by source text,
// so a live-editor host that re-runs analysis on every keystroke against
// an unchanged buffer does not re-lex/re-parse/re-validate it. This is
// purely a process-local performance optimization: Analyze itself stays
// pure and retains no state; the cache sits entirely outside the pipeline
// and never changes what a given source analyzes to.
//
// github.com/hashicorp/golang-lru/v2 backs the cache, promoted here from
// an indirect, transitively-pulled dependency to a direct one.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// AnalyzeFunc matches the shape of tdl.Analyze; the cache is generic over
// it so it never needs to import the root package (which would create an
// import cycle, since tdl is the natural place to offer a cached
// variant).
type AnalyzeFunc[T any] func(source string) T

// Cache memoizes calls to an AnalyzeFunc by the exact source string. It is
// safe for concurrent use.
type Cache[T any] struct {
	analyze AnalyzeFunc[T]
	lru     *lru.Cache[string, T]
}

// New builds a Cache of the given capacity (entries, not bytes) wrapping
// analyze. A capacity of zero or less defaults to 128.
func New[T any](capacity int, analyze AnalyzeFunc[T]) *Cache[T] {
	if capacity <= 0 {
		capacity = 128
	}
	l, _ := lru.New[string, T](capacity)
	return &Cache[T]{analyze: analyze, lru: l}
}

// Analyze returns the cached result for source, computing and storing it
// on a miss.
func (c *Cache[T]) Analyze(source string) T {
	if v, ok := c.lru.Get(source); ok {
		return v
	}
	v := c.analyze(source)
	c.lru.Add(source, v)
	return v
}

// Purge discards every cached entry.
func (c *Cache[T]) Purge() {
	c.lru.Purge()
}

// Len reports the number of cached entries.
func (c *Cache[T]) Len() int {
	return c.lru.Len()
}
