package containers

import (
	"slices"
	"sync/atomic"
)

type node[T any] struct {
	value T
	next  *node[T]
}

// Mailbox collects messages posted concurrently by many senders for a single reader.
// Posting never blocks. A zero value Mailbox can be used without initialization.
type Mailbox[T any] struct {
	head   atomic.Pointer[node[T]]
	closed atomic.Bool
}

// Post delivers v. It reports false when the mailbox is closed.
func (m *Mailbox[T]) Post(v T) bool {
	if m.closed.Load() {
		return false
	}

	n := &node[T]{value: v}
	for {
		oldHead := m.head.Load()
		n.next = oldHead
		if m.head.CompareAndSwap(oldHead, n) {
			return true
		}
	}
}

// Drain removes every message currently in the mailbox and returns them in the order
// they were posted.
func (m *Mailbox[T]) Drain() []T {
	var out []T
	for n := m.head.Swap(nil); n != nil; n = n.next {
		out = append(out, n.value)
	}
	slices.Reverse(out)
	return out
}

// Close rejects further posts. Messages already delivered can still be drained.
func (m *Mailbox[T]) Close() {
	m.closed.Store(true)
}

func (m *Mailbox[T]) Closed() bool {
	return m.closed.Load()
}
