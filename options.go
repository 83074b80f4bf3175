package fixedvec

type config[T any] struct {
	drop func(T)
}

// Option configures a Vector at construction.
type Option[T any] func(*config[T])

// WithDrop registers a hook the vector invokes exactly once for every
// element it destroys itself: Truncate, Clear, Close, and the unconsumed
// remainder of a Drain.
//
// Elements whose ownership passes to the caller (Pop, Drain.Next,
// Drain.NextBack) bypass the hook, as do elements copied by Clone.
//
// Use this when elements hold resources that must be released, e.g. pooled
// buffers or file handles.
func WithDrop[T any](fn func(T)) Option[T] {
	return func(c *config[T]) {
		c.drop = fn
	}
}
