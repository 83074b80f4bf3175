//go:build !unix

package mmap

// Heap fallback for platforms without anonymous mappings. The block still
// behaves like a mapping (fixed, zero-filled) but remains GC-visible.
func osMapAnon(size int) ([]byte, func([]byte) error, error) {
	return make([]byte, size), nil, nil
}
