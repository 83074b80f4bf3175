package fixedvec

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/hupe1980/fixedvec/internal/mmap"
)

// ErrPointerElement is returned by NewOffHeap when the element type
// contains pointers. The garbage collector does not scan the mapped block,
// so storing pointers there would let their referents be collected while
// still reachable through the vector.
var ErrPointerElement = errors.New("fixedvec: off-heap storage requires a pointer-free element type")

// NewOffHeap returns a vector whose fixed backing block lives in an
// anonymous memory mapping outside the Go heap. Large vectors of plain
// data (sample buffers, packed records) then add nothing to GC scan time.
//
// T must be pointer-free: no pointers, maps, channels, functions, slices,
// strings, or interfaces anywhere in the type. Violations are reported as
// ErrPointerElement.
//
// Close unmaps the block; the vector must not be used afterwards. Every
// other operation behaves exactly like a heap-backed vector.
func NewOffHeap[T any](capacity int, opts ...Option[T]) (*Vector[T], error) {
	if capacity < 0 {
		panic(fmt.Sprintf("fixedvec: NewOffHeap: negative capacity %d", capacity))
	}
	rt := reflect.TypeFor[T]()
	if hasPointers(rt) {
		return nil, fmt.Errorf("%w: %s", ErrPointerElement, rt)
	}
	if capacity == 0 || rt.Size() == 0 {
		// Nothing to map; a zero-byte block behaves the same on the heap.
		return New[T](capacity, opts...), nil
	}

	m, err := mmap.MapAnon(capacity * int(rt.Size()))
	if err != nil {
		return nil, fmt.Errorf("fixedvec: off-heap mapping failed: %w", err)
	}

	var cfg config[T]
	for _, opt := range opts {
		opt(&cfg)
	}

	// The mapping is page-aligned, which satisfies any element alignment.
	data := m.Bytes()
	return &Vector[T]{
		items:   unsafe.Slice((*T)(unsafe.Pointer(&data[0])), capacity),
		drop:    cfg.drop,
		mapping: m,
	}, nil
}

func hasPointers(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return hasPointers(rt.Elem())
	case reflect.Struct:
		for i := 0; i < rt.NumField(); i++ {
			if hasPointers(rt.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Pointers, maps, chans, funcs, interfaces, slices, strings,
		// unsafe.Pointer.
		return true
	}
}
