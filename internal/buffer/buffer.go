// Package buffer provides owned byte buffers for decoded native strings.
package buffer

import "sync"

// Allocator hands out buffers and takes them back. Every buffer returned
// by Alloc must be passed to Free exactly once.
type Allocator interface {
	Alloc(size int) []byte
	Free(buf []byte)
}

type heapAllocator struct{}

func (heapAllocator) Alloc(size int) []byte { return make([]byte, size) }

func (heapAllocator) Free([]byte) {}

// Heap allocates from the Go heap. Free is a no-op.
var Heap Allocator = heapAllocator{}

// Owned is a decoded string whose buffer belongs to exactly one owner.
// A nil *Owned is the absent string.
type Owned struct {
	buf   []byte
	n     int
	alloc Allocator
}

// Adopt takes ownership of buf, of which the first n bytes are content.
// buf must have come from alloc.
func Adopt(alloc Allocator, buf []byte, n int) *Owned {
	return &Owned{buf: buf, n: n, alloc: alloc}
}

// String copies the content out. It returns "" for nil or released buffers.
func (o *Owned) String() string {
	if o == nil || o.buf == nil {
		return ""
	}
	return string(o.buf[:o.n])
}

// Len is the content length in bytes, excluding the terminator.
func (o *Owned) Len() int {
	if o == nil || o.buf == nil {
		return 0
	}
	return o.n
}

// Release returns the buffer to its allocator. Later calls are no-ops.
func (o *Owned) Release() {
	if o == nil || o.buf == nil {
		return
	}
	buf := o.buf
	o.buf, o.n = nil, 0
	o.alloc.Free(buf)
}

// Arena groups the buffers owned by one record so they are torn down
// together.
type Arena struct {
	owned []*Owned
}

// Keep adds o to the arena. nil is ignored.
func (a *Arena) Keep(o *Owned) {
	if o != nil {
		a.owned = append(a.owned, o)
	}
}

// Release frees every buffer in reverse order of adoption.
func (a *Arena) Release() {
	for i := len(a.owned) - 1; i >= 0; i-- {
		a.owned[i].Release()
	}
	a.owned = nil
}

// Stats summarizes allocator activity.
type Stats struct {
	Allocs      int
	Frees       int
	Outstanding int
	// InvalidFrees counts frees of buffers that were not outstanding,
	// i.e. double frees or foreign buffers.
	InvalidFrees int
}

// CountingAllocator wraps another allocator and tracks every buffer it
// hands out.
type CountingAllocator struct {
	mu     sync.Mutex
	inner  Allocator
	live   map[*byte]struct{}
	allocs int
	frees  int
	bad    int
}

// NewCountingAllocator wraps inner, or Heap when inner is nil.
func NewCountingAllocator(inner Allocator) *CountingAllocator {
	if inner == nil {
		inner = Heap
	}
	return &CountingAllocator{inner: inner, live: make(map[*byte]struct{})}
}

func (c *CountingAllocator) Alloc(size int) []byte {
	if size < 1 {
		size = 1
	}
	buf := c.inner.Alloc(size)
	c.mu.Lock()
	c.allocs++
	c.live[&buf[0]] = struct{}{}
	c.mu.Unlock()
	return buf
}

func (c *CountingAllocator) Free(buf []byte) {
	c.mu.Lock()
	if cap(buf) == 0 {
		c.bad++
		c.mu.Unlock()
		return
	}
	key := &buf[:1][0]
	if _, ok := c.live[key]; !ok {
		c.bad++
		c.mu.Unlock()
		return
	}
	delete(c.live, key)
	c.frees++
	c.mu.Unlock()
	c.inner.Free(buf)
}

func (c *CountingAllocator) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Allocs:       c.allocs,
		Frees:        c.frees,
		Outstanding:  len(c.live),
		InvalidFrees: c.bad,
	}
}
