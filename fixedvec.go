package fixedvec

import "fmt"

// Vector is a fixed-capacity sequence container backed by a single block of
// storage allocated at construction. It never grows: exceeding the capacity
// is always a reported condition, never handled by reallocation.
//
// Slots at [0, length) hold live elements; slots at [length, capacity) are
// dead and are kept at the zero value of T so they pin no heap objects.
// Every operation that logically removes an element zeroes its slot.
//
// A Vector is not safe for concurrent use.
type Vector[T any] struct {
	items   []T // len(items) == capacity, never reallocated
	length  int
	drop    func(T)
	mapping storageMapping // non-nil for off-heap backing (see NewOffHeap)
	drain   *Drain[T]      // non-nil while a Drain is open
}

// storageMapping is the slice of the internal mmap API the vector needs.
type storageMapping interface {
	Close() error
}

// New returns an empty vector with the given fixed capacity.
// It panics if capacity is negative.
func New[T any](capacity int, opts ...Option[T]) *Vector[T] {
	if capacity < 0 {
		panic(fmt.Sprintf("fixedvec: New: negative capacity %d", capacity))
	}
	var cfg config[T]
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Vector[T]{
		items: make([]T, capacity),
		drop:  cfg.drop,
	}
}

// From returns a vector that takes ownership of items as its backing block,
// without copying: capacity and length both equal len(items). The caller
// must not use the slice afterwards.
//
// This is the entry point for turning a fully-populated fixed-size array
// into a vector; arrays convert via slicing:
//
//	v := fixedvec.From(arr[:])
func From[T any](items []T, opts ...Option[T]) *Vector[T] {
	var cfg config[T]
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Vector[T]{
		items:  items,
		length: len(items),
		drop:   cfg.drop,
	}
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int { return v.length }

// Cap returns the fixed capacity.
func (v *Vector[T]) Cap() int { return len(v.items) }

// IsEmpty reports whether the vector holds no live elements.
func (v *Vector[T]) IsEmpty() bool { return v.length == 0 }

// IsFull reports whether every slot holds a live element.
func (v *Vector[T]) IsFull() bool { return v.length == len(v.items) }

// Remaining returns the number of free slots.
func (v *Vector[T]) Remaining() int { return len(v.items) - v.length }

// PushUnchecked appends item without a capacity check. The caller must have
// verified Len() < Cap(); violating the precondition panics on the slot
// write. This is the fast-path primitive the checked mutators build on.
func (v *Vector[T]) PushUnchecked(item T) {
	v.items[v.length] = item
	v.length++
}

// TryPush appends item, or returns a *CapacityError carrying the item back
// if the vector is full. The vector is unchanged on failure.
func (v *Vector[T]) TryPush(item T) error {
	v.ensureNoDrain("TryPush")
	if v.IsFull() {
		return &CapacityError[T]{Item: item}
	}
	v.PushUnchecked(item)
	return nil
}

// Push appends item and panics if the vector is full. Use it when the
// caller has already established sufficient capacity as a precondition;
// use TryPush when exhaustion is a recoverable condition.
func (v *Vector[T]) Push(item T) {
	if err := v.TryPush(item); err != nil {
		panic(fmt.Sprintf("fixedvec: Push: vector is full (capacity %d)", len(v.items)))
	}
}

// Pop removes and returns the last live element. It reports false on an
// empty vector, which is left unchanged. The drop hook is not invoked:
// ownership transfers to the caller.
func (v *Vector[T]) Pop() (T, bool) {
	v.ensureNoDrain("Pop")
	var zero T
	if v.length == 0 {
		return zero, false
	}
	v.length--
	item := v.items[v.length]
	v.items[v.length] = zero
	return item, true
}

// Truncate destroys every element at [n, Len()) in index order and shortens
// the vector to n elements. It is a no-op when n >= Len() and panics when n
// is negative.
func (v *Vector[T]) Truncate(n int) {
	v.ensureNoDrain("Truncate")
	if n < 0 {
		panicOutOfBounds("Truncate", n, v.length)
	}
	if n >= v.length {
		return
	}
	if v.drop != nil {
		for i := n; i < v.length; i++ {
			v.drop(v.items[i])
		}
	}
	clear(v.items[n:v.length])
	v.length = n
}

// Clear destroys all live elements.
func (v *Vector[T]) Clear() { v.Truncate(0) }

// TryInsert inserts item at index i, shifting the elements at [i, Len())
// one slot right with a single block relocation. It returns a
// *CapacityError carrying the item if the vector is full, leaving the
// vector unchanged, and panics if i > Len().
func (v *Vector[T]) TryInsert(i int, item T) error {
	v.ensureNoDrain("TryInsert")
	if i < 0 || i > v.length {
		panicOutOfBounds("TryInsert", i, v.length)
	}
	if v.IsFull() {
		return &CapacityError[T]{Item: item}
	}
	copy(v.items[i+1:v.length+1], v.items[i:v.length])
	v.items[i] = item
	v.length++
	return nil
}

// Insert is TryInsert with capacity exhaustion escalated to a panic.
func (v *Vector[T]) Insert(i int, item T) {
	if err := v.TryInsert(i, item); err != nil {
		panic(fmt.Sprintf("fixedvec: Insert: vector is full (capacity %d)", len(v.items)))
	}
}

// TryExtendFromSlice bulk-appends all of other. If fewer than len(other)
// slots are free, it returns an error wrapping ErrCapacityExceeded and the
// vector is left completely unchanged; the caller still owns the input
// slice. The elements are copied, not aliased.
func (v *Vector[T]) TryExtendFromSlice(other []T) error {
	v.ensureNoDrain("TryExtendFromSlice")
	if v.Remaining() < len(other) {
		return fmt.Errorf("%w: need %d free slots, have %d", ErrCapacityExceeded, len(other), v.Remaining())
	}
	copy(v.items[v.length:], other)
	v.length += len(other)
	return nil
}

// At returns the element at index i. It panics if i is outside [0, Len()).
func (v *Vector[T]) At(i int) T {
	if i < 0 || i >= v.length {
		panicOutOfBounds("At", i, v.length)
	}
	return v.items[i]
}

// Set replaces the element at index i. It panics if i is outside
// [0, Len()). The previous value is overwritten without invoking the drop
// hook; callers owning resourceful elements should retrieve them first.
func (v *Vector[T]) Set(i int, item T) {
	v.ensureNoDrain("Set")
	if i < 0 || i >= v.length {
		panicOutOfBounds("Set", i, v.length)
	}
	v.items[i] = item
}

// Slice returns the live elements [0, Len()) as a contiguous view into the
// backing block. Callers may mutate elements in place but must not retain
// the slice across mutations of the vector.
func (v *Vector[T]) Slice() []T {
	return v.items[:v.length]
}

// Clone returns a new heap-backed vector with the same capacity, drop hook,
// and live contents. Elements are shallow-copied in index order.
func (v *Vector[T]) Clone() *Vector[T] {
	out := &Vector[T]{
		items:  make([]T, len(v.items)),
		length: v.length,
		drop:   v.drop,
	}
	copy(out.items, v.items[:v.length])
	return out
}

// CloneFunc is Clone with each live element duplicated through fn, in index
// order. Use it when elements own resources that must not be shared.
func (v *Vector[T]) CloneFunc(fn func(T) T) *Vector[T] {
	out := &Vector[T]{
		items: make([]T, len(v.items)),
		drop:  v.drop,
	}
	for i := 0; i < v.length; i++ {
		out.items[i] = fn(v.items[i])
		out.length++
	}
	return out
}

// Close destroys every live element in index order and releases the
// backing mapping for off-heap vectors. It is idempotent. The vector must
// not be used after Close.
func (v *Vector[T]) Close() error {
	v.Clear()
	if v.mapping != nil {
		m := v.mapping
		v.mapping = nil
		v.items = nil
		return m.Close()
	}
	return nil
}

// String formats the live elements only, e.g. "[1 2 3]".
func (v *Vector[T]) String() string {
	return fmt.Sprint(v.Slice())
}

func (v *Vector[T]) ensureNoDrain(method string) {
	if v.drain != nil {
		panicOpenDrain(method)
	}
}
