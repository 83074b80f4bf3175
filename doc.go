// Package fixedvec provides a fixed-capacity vector with a draining cursor.
//
// A Vector owns a single block of storage sized at construction and never
// reallocates: when the block is full, mutations fail (TryPush, TryInsert,
// TryExtendFromSlice) or panic (Push, Insert) instead of growing. That
// makes capacity a hard, observable budget, which is what you want for
// bounded queues, per-request scratch buffers, and pooled working sets.
//
// # Quick start
//
//	v := fixedvec.New[int](4)
//	v.Push(1)
//	v.Push(2)
//	if err := v.TryPush(3); err != nil { ... }
//	fmt.Println(v.Slice()) // [1 2 3]
//
// # Draining a range
//
// Drain removes a contiguous index range and yields the removed elements
// from either end. Closing the cursor compacts the vector in place; close
// it on every exit path:
//
//	d := v.Drain(1, 3)
//	defer d.Close()
//	for item, ok := d.Next(); ok; item, ok = d.Next() {
//	    consume(item)
//	}
//
// Abandoning the cursor early is safe: Close destroys the unconsumed
// remainder (running the drop hook exactly once per element) and still
// restores the vector to its compacted, valid state.
//
// # Element lifetime
//
// Dead slots are kept at the zero value of T so removed elements pin no
// heap objects. For elements that own resources, WithDrop registers a hook
// invoked exactly once for every element the vector destroys itself;
// elements handed to the caller (Pop, Drain.Next, Drain.NextBack) bypass
// it.
//
// # Storage backends
//
// New allocates the block on the Go heap. NewOffHeap places it in an
// anonymous memory mapping for pointer-free element types, keeping large
// plain-data vectors out of GC scans.
//
// # Related packages
//
//   - snapshot: self-describing binary persistence of a vector's contents
//   - pool: a concurrency-safe pool of equally-sized vectors
//
// A Vector is not synchronized; concurrent use of one vector is undefined.
package fixedvec
