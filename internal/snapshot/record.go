package snapshot

import (
	"github.com/1broseidon/winsnap/internal/buffer"
	"github.com/1broseidon/winsnap/internal/extract"
)

// Record is one materialized window. Its strings belong to the record and
// are freed by Release.
type Record struct {
	ID       uint64
	OwnerPID uint64
	Alpha    float64
	Bounds   extract.Rect
	// OwnerName and Name are nil when the registry omitted them.
	OwnerName *buffer.Owned
	Name      *buffer.Owned

	arena buffer.Arena
}

// Owner returns the owning application's name.
func (r *Record) Owner() (string, bool) {
	return r.OwnerName.String(), r.OwnerName != nil
}

// Title returns the window title.
func (r *Record) Title() (string, bool) {
	return r.Name.String(), r.Name != nil
}

// Release frees the record's strings. Calling it again does nothing.
func (r *Record) Release() {
	if r == nil {
		return
	}
	r.arena.Release()
	r.OwnerName, r.Name = nil, nil
}

// Batch is the outcome of MaterializeAll.
type Batch struct {
	Records []*Record
	// Skipped holds the failures dropped under PolicySkip.
	Skipped []*RecordError
}

// Release frees every record in the batch.
func (b *Batch) Release() {
	if b == nil {
		return
	}
	for _, r := range b.Records {
		r.Release()
	}
	b.Records = nil
}
