package fixedvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRange(n int) *Vector[int] {
	v := New[int](n)
	for i := 0; i < n; i++ {
		v.Push(i)
	}
	return v
}

func drainAll[T any](d *Drain[T]) []T {
	var out []T
	for item, ok := d.Next(); ok; item, ok = d.Next() {
		out = append(out, item)
	}
	return out
}

func TestDrain_Forward(t *testing.T) {
	v := newRange(10)

	d := v.Drain(2, 7)
	got := drainAll(d)
	d.Close()

	assert.Equal(t, []int{2, 3, 4, 5, 6}, got)
	assert.Equal(t, []int{0, 1, 7, 8, 9}, v.Slice())
	assert.Equal(t, 5, v.Len())
}

func TestDrain_Backward(t *testing.T) {
	v := newRange(10)

	d := v.Drain(2, 7)
	var got []int
	for item, ok := d.NextBack(); ok; item, ok = d.NextBack() {
		got = append(got, item)
	}
	d.Close()

	assert.Equal(t, []int{6, 5, 4, 3, 2}, got)
	assert.Equal(t, []int{0, 1, 7, 8, 9}, v.Slice())
}

func TestDrain_Mixed(t *testing.T) {
	v := newRange(10)

	d := v.Drain(2, 7)

	front, _ := d.Next()
	back, _ := d.NextBack()
	assert.Equal(t, 2, front)
	assert.Equal(t, 6, back)
	assert.Equal(t, 3, d.Len())

	assert.Equal(t, []int{3, 4, 5}, drainAll(d))

	_, ok := d.NextBack()
	assert.False(t, ok)

	d.Close()
	assert.Equal(t, []int{0, 1, 7, 8, 9}, v.Slice())
}

func TestDrain_AbandonedImmediately(t *testing.T) {
	v := From([]string{"a", "b", "c", "d", "e"})

	// Dropping the cursor without iterating still removes the range.
	v.Drain(1, 3).Close()

	assert.Equal(t, []string{"a", "d", "e"}, v.Slice())
	assert.Equal(t, 3, v.Len())
}

func TestDrain_PartiallyConsumed(t *testing.T) {
	var dropped []int
	v := New[int](6, WithDrop(func(x int) { dropped = append(dropped, x) }))
	for i := 0; i < 6; i++ {
		v.Push(i)
	}

	d := v.Drain(1, 5)
	item, ok := d.Next()
	require.True(t, ok)
	assert.Equal(t, 1, item)
	d.Close()

	// Only the unconsumed remainder is destroyed, in index order.
	assert.Equal(t, []int{2, 3, 4}, dropped)
	assert.Equal(t, []int{0, 5}, v.Slice())
}

func TestDrain_DropExactlyOnce(t *testing.T) {
	counts := map[int]int{}
	v := New[int](8, WithDrop(func(x int) { counts[x]++ }))
	for i := 0; i < 8; i++ {
		v.Push(i)
	}

	d := v.Drain(2, 6)
	d.Next()     // 2 consumed by caller
	d.NextBack() // 5 consumed by caller
	d.Close()
	d.Close() // idempotent; must not re-drop

	assert.Equal(t, map[int]int{3: 1, 4: 1}, counts)
	assert.Equal(t, []int{0, 1, 6, 7}, v.Slice())
}

func TestDrain_Len(t *testing.T) {
	v := newRange(10)
	d := v.Drain(3, 8)
	defer d.Close()

	// Exact-size: Len equals the number of remaining successful calls.
	for want := 5; want > 0; want-- {
		assert.Equal(t, want, d.Len())
		_, ok := d.Next()
		require.True(t, ok)
	}
	assert.Equal(t, 0, d.Len())
	_, ok := d.Next()
	assert.False(t, ok)
}

func TestDrain_EmptyRange(t *testing.T) {
	v := newRange(5)

	d := v.Drain(2, 2)
	assert.Equal(t, 0, d.Len())
	_, ok := d.Next()
	assert.False(t, ok)
	d.Close()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, v.Slice())
}

func TestDrain_NoTail(t *testing.T) {
	v := newRange(5)

	d := v.Drain(2, 5)
	assert.Equal(t, []int{2, 3, 4}, drainAll(d))
	d.Close()

	assert.Equal(t, []int{0, 1}, v.Slice())
}

func TestDrain_FullRange(t *testing.T) {
	v := newRange(4)

	d := v.Drain(0, 4)
	assert.Equal(t, []int{0, 1, 2, 3}, drainAll(d))
	d.Close()

	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 4, v.Cap())
}

func TestDrain_OutOfBounds(t *testing.T) {
	v := newRange(4)

	assert.Panics(t, func() { v.Drain(3, 2) })
	assert.Panics(t, func() { v.Drain(-1, 2) })
	assert.Panics(t, func() { v.Drain(0, 5) })
}

func TestDrain_TruncatesLengthWhileOpen(t *testing.T) {
	v := newRange(8)

	d := v.Drain(3, 6)
	// The hidden range is not observable through the vector while the
	// cursor is open; it only reports the prefix.
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, []int{0, 1, 2}, v.Slice())

	d.Close()
	assert.Equal(t, []int{0, 1, 2, 6, 7}, v.Slice())
}

func TestDrain_MutatorsPanicWhileOpen(t *testing.T) {
	v := newRange(6)
	d := v.Drain(1, 3)
	defer d.Close()

	assert.Panics(t, func() { v.Push(9) })
	assert.Panics(t, func() { _ = v.TryPush(9) })
	assert.Panics(t, func() { v.Pop() })
	assert.Panics(t, func() { v.Truncate(0) })
	assert.Panics(t, func() { v.Insert(0, 9) })
	assert.Panics(t, func() { _ = v.TryExtendFromSlice([]int{9}) })
	assert.Panics(t, func() { v.Set(0, 9) })
	assert.Panics(t, func() { v.Drain(0, 1) })
	assert.Panics(t, func() { _ = v.Close() })
}

func TestDrain_VectorUsableAfterClose(t *testing.T) {
	v := newRange(6)

	d := v.Drain(1, 3)
	d.Close()

	v.Push(9)
	assert.Equal(t, []int{0, 3, 4, 5, 9}, v.Slice())
}

func TestDrain_ClosedCursorYieldsNothing(t *testing.T) {
	v := newRange(5)
	d := v.Drain(0, 3)
	d.Close()

	_, ok := d.Next()
	assert.False(t, ok)
	_, ok = d.NextBack()
	assert.False(t, ok)
	assert.Equal(t, 0, d.Len())
}

func TestDrain_ZeroesVacatedSlots(t *testing.T) {
	v := From([]string{"a", "b", "c", "d", "e"})

	d := v.Drain(1, 4)
	d.Next()
	d.Close()

	assert.Equal(t, []string{"a", "e"}, v.Slice())
	// Dead slots must not pin the old values.
	for i := v.Len(); i < v.Cap(); i++ {
		assert.Empty(t, v.items[i])
	}
}

// FuzzDrain exercises random ranges and consumption patterns and checks the
// compaction invariant: afterwards the vector holds the original prefix
// followed by the original suffix, and every drained element was yielded or
// destroyed exactly once.
func FuzzDrain(f *testing.F) {
	f.Add(uint8(10), uint8(2), uint8(7), uint16(0b10110))
	f.Add(uint8(5), uint8(1), uint8(3), uint16(0))
	f.Add(uint8(3), uint8(0), uint8(3), uint16(0xFFFF))

	f.Fuzz(func(t *testing.T, n, s, e uint8, pattern uint16) {
		size := int(n % 32)
		start := int(s)
		end := int(e)
		if start > end || end > size {
			t.Skip()
		}

		seen := map[int]int{}
		v := New[int](size, WithDrop(func(x int) { seen[x]++ }))
		for i := 0; i < size; i++ {
			v.Push(i)
		}

		d := v.Drain(start, end)
		// Consume a pattern-driven number of elements from alternating ends.
		for i := 0; i < 16 && d.Len() > 0; i++ {
			if pattern&(1<<i) == 0 {
				break
			}
			var item int
			var ok bool
			if i%2 == 0 {
				item, ok = d.Next()
			} else {
				item, ok = d.NextBack()
			}
			if !ok {
				break
			}
			seen[item]++
		}
		d.Close()

		if v.Len() != size-(end-start) {
			t.Fatalf("length %d after draining [%d, %d) of %d", v.Len(), start, end, size)
		}
		for i := 0; i < start; i++ {
			if v.At(i) != i {
				t.Fatalf("prefix slot %d = %d", i, v.At(i))
			}
		}
		for i := start; i < v.Len(); i++ {
			want := i + (end - start)
			if v.At(i) != want {
				t.Fatalf("tail slot %d = %d, want %d", i, v.At(i), want)
			}
		}
		for i := start; i < end; i++ {
			if seen[i] != 1 {
				t.Fatalf("drained element %d seen %d times", i, seen[i])
			}
		}
	})
}
