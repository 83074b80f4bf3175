// Package mmap provides anonymous memory mappings for off-heap storage.
//
// An anonymous mapping is a block of read-write memory obtained directly
// from the OS, outside the Go garbage collector's control. fixedvec uses it
// to back vectors of pointer-free elements so large plain-data blocks add
// nothing to GC scan time.
//
// On non-unix platforms the package falls back to a plain heap allocation
// with identical semantics apart from GC visibility.
package mmap

import (
	"errors"
	"sync/atomic"
)

// ErrInvalidSize is returned when a mapping of non-positive size is requested.
var ErrInvalidSize = errors.New("mmap: invalid mapping size")

// Mapping represents an anonymous memory mapping. It owns the underlying
// byte slice and is responsible for unmapping it.
type Mapping struct {
	data   []byte
	size   int
	closed atomic.Bool
	// unmap is the platform-specific release function; nil for the heap
	// fallback.
	unmap func([]byte) error
}

// MapAnon creates a read-write anonymous mapping of the given size.
// The returned memory is zero-filled and page-aligned.
func MapAnon(size int) (*Mapping, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	data, unmapFunc, err := osMapAnon(size)
	if err != nil {
		return nil, err
	}
	return &Mapping{
		data:  data,
		size:  size,
		unmap: unmapFunc,
	}, nil
}

// Bytes returns the underlying byte slice.
// The slice is valid only until Close is called.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the size of the mapping in bytes.
func (m *Mapping) Size() int {
	return m.size
}

// Close releases the mapping. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil // Already closed
	}
	if m.unmap != nil && m.data != nil {
		return m.unmap(m.data)
	}
	return nil
}
