package fixedvec

import "fmt"

// Drain is a transient cursor over a contiguous index range being removed
// from a Vector. It yields the range's elements one at a time from either
// end and, on Close, compacts the vector so the surviving tail closes the
// gap.
//
// While a Drain is open it has exclusive use of its vector: every mutating
// vector operation panics until Close runs. The vector's length is
// truncated to the range start at creation, so even an abandoned cursor
// never exposes removed slots through the vector's normal interface - at
// worst the vector reports a shorter length until Close restores it.
//
// Callers should close the cursor on every exit path, including panics
// mid-iteration:
//
//	d := v.Drain(1, 3)
//	defer d.Close()
//	for item, ok := d.Next(); ok; item, ok = d.Next() {
//	    ...
//	}
type Drain[T any] struct {
	vec        *Vector[T]
	drainStart int // original start of the drained range
	tailStart  int // original end of the drained range
	tailLength int // surviving elements after the range
	head       int // front of the not-yet-yielded portion
	tail       int // one past the back of the not-yet-yielded portion
	closed     bool
}

// Drain removes the half-open index range [start, end) from the vector and
// returns a cursor over the removed elements. It panics if the range is
// out of bounds or another Drain is already open.
//
// The vector's length drops to start immediately; the elements originally
// at [end, Len()) reappear, shifted left, once the cursor is closed.
func (v *Vector[T]) Drain(start, end int) *Drain[T] {
	v.ensureNoDrain("Drain")
	if start < 0 || start > end || end > v.length {
		panic(fmt.Sprintf("fixedvec: Drain: range [%d, %d) out of bounds in vector of length %d", start, end, v.length))
	}
	d := &Drain[T]{
		vec:        v,
		drainStart: start,
		tailStart:  end,
		tailLength: v.length - end,
		head:       start,
		tail:       end,
	}
	v.length = start
	v.drain = d
	return d
}

// Next moves the front-most remaining element out of the drained range and
// returns it. It reports false once the range is exhausted or the cursor
// is closed. Ownership transfers to the caller; the drop hook is not
// invoked.
func (d *Drain[T]) Next() (T, bool) {
	var zero T
	if d.closed || d.head == d.tail {
		return zero, false
	}
	item := d.vec.items[d.head]
	d.vec.items[d.head] = zero
	d.head++
	return item, true
}

// NextBack is Next from the back of the range. Front and back consumption
// may interleave freely.
func (d *Drain[T]) NextBack() (T, bool) {
	var zero T
	if d.closed || d.head == d.tail {
		return zero, false
	}
	d.tail--
	item := d.vec.items[d.tail]
	d.vec.items[d.tail] = zero
	return item, true
}

// Len returns the exact number of elements not yet yielded: the combined
// number of Next and NextBack calls that will still succeed.
func (d *Drain[T]) Len() int {
	if d.closed {
		return 0
	}
	return d.tail - d.head
}

// Close destroys every element the caller never consumed (in index order,
// drop hook exactly once each), relocates the surviving tail over the gap
// with a single overlapping-safe block move, and restores the vector's
// length to cover the tail. It is idempotent, and it is the only way the
// vector becomes usable again after Drain.
func (d *Drain[T]) Close() {
	if d.closed {
		return
	}
	d.closed = true
	v := d.vec

	if v.drop != nil {
		for i := d.head; i < d.tail; i++ {
			v.drop(v.items[i])
		}
	}
	clear(v.items[d.head:d.tail])

	if d.tailLength > 0 {
		// Source and destination may overlap; copy is a block move.
		copy(v.items[d.drainStart:], v.items[d.tailStart:d.tailStart+d.tailLength])
	}
	newLength := d.drainStart + d.tailLength
	// Zero the vacated suffix so dead slots pin nothing.
	clear(v.items[newLength : d.tailStart+d.tailLength])

	v.length = newLength
	v.drain = nil
}
