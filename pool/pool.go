// Package pool provides a concurrency-safe pool of equally-sized vectors.
//
// Fixed-capacity vectors are a natural fit for pooling: every pooled vector
// has the same backing-block size, so a recycled vector is exactly as good
// as a fresh one. Individual vectors remain single-threaded; only the pool
// itself is synchronized.
package pool

import (
	"sync"

	"github.com/hupe1980/fixedvec"
)

// Pool hands out empty vectors of one fixed capacity and recycles them.
type Pool[T any] struct {
	capacity int
	pool     sync.Pool
}

// New creates a pool of vectors with the given capacity. The options are
// applied to every vector the pool allocates.
func New[T any](capacity int, opts ...fixedvec.Option[T]) *Pool[T] {
	p := &Pool[T]{capacity: capacity}
	p.pool.New = func() any {
		return fixedvec.New[T](capacity, opts...)
	}
	return p
}

// Capacity returns the fixed capacity of the pool's vectors.
func (p *Pool[T]) Capacity() int { return p.capacity }

// Get returns an empty vector, reusing a recycled one when available.
func (p *Pool[T]) Get() *fixedvec.Vector[T] {
	return p.pool.Get().(*fixedvec.Vector[T])
}

// Put clears v (running its drop hook for any still-live elements) and
// recycles it. Vectors whose capacity differs from the pool's are dropped
// instead of pooled, as are nil vectors.
func (p *Pool[T]) Put(v *fixedvec.Vector[T]) {
	if v == nil || v.Cap() != p.capacity {
		return
	}
	v.Clear()
	p.pool.Put(v)
}
