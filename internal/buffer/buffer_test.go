package buffer

import "testing"

func TestOwned_ReleaseFreesOnce(t *testing.T) {
	alloc := NewCountingAllocator(nil)
	buf := alloc.Alloc(8)
	n := copy(buf, "hello")
	o := Adopt(alloc, buf, n)

	if got := o.String(); got != "hello" {
		t.Fatalf("String() = %q, want %q", got, "hello")
	}
	o.Release()
	o.Release()

	st := alloc.Stats()
	if st.Allocs != 1 || st.Frees != 1 || st.Outstanding != 0 || st.InvalidFrees != 0 {
		t.Fatalf("unexpected stats after double release: %+v", st)
	}
	if o.String() != "" || o.Len() != 0 {
		t.Fatalf("released buffer should read as empty, got %q", o.String())
	}
}

func TestOwned_NilIsAbsent(t *testing.T) {
	var o *Owned
	if o.String() != "" || o.Len() != 0 {
		t.Fatal("nil Owned should be empty")
	}
	o.Release()
}

func TestArena_ReleasesEveryBuffer(t *testing.T) {
	alloc := NewCountingAllocator(nil)
	var a Arena
	for _, s := range []string{"a", "bb", "ccc"} {
		buf := alloc.Alloc(len(s) + 1)
		a.Keep(Adopt(alloc, buf, copy(buf, s)))
	}
	a.Keep(nil)

	if st := alloc.Stats(); st.Outstanding != 3 {
		t.Fatalf("expected 3 outstanding buffers, got %+v", st)
	}
	a.Release()
	a.Release()
	if st := alloc.Stats(); st.Allocs != 3 || st.Frees != 3 || st.Outstanding != 0 {
		t.Fatalf("expected balanced allocator, got %+v", st)
	}
}

func TestCountingAllocator_DetectsForeignFree(t *testing.T) {
	alloc := NewCountingAllocator(nil)
	alloc.Free(make([]byte, 4))
	alloc.Free(nil)

	buf := alloc.Alloc(4)
	alloc.Free(buf)
	alloc.Free(buf)

	st := alloc.Stats()
	if st.InvalidFrees != 3 {
		t.Fatalf("InvalidFrees = %d, want 3", st.InvalidFrees)
	}
	if st.Frees != 1 {
		t.Fatalf("Frees = %d, want 1", st.Frees)
	}
}
