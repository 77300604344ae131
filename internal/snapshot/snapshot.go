// Package snapshot turns one native window registry enumeration into
// owned, typed window records.
package snapshot

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/1broseidon/winsnap/internal/buffer"
	"github.com/1broseidon/winsnap/internal/extract"
	"github.com/1broseidon/winsnap/internal/native"
)

// ErrRegistryUnavailable means the registry could not enumerate windows.
var ErrRegistryUnavailable = errors.New("window registry unavailable")

// Policy decides what MaterializeAll does with a record that fails to
// materialize.
type Policy string

const (
	// PolicyFailFast aborts on the first failing record.
	PolicyFailFast Policy = "fail"
	// PolicySkip drops the failing record, logs a warning and continues.
	PolicySkip Policy = "skip"
)

// ParsePolicy validates a policy name. Empty selects PolicyFailFast.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyFailFast:
		return PolicyFailFast, nil
	case PolicySkip:
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("unknown record error policy %q (want %q or %q)", s, PolicyFailFast, PolicySkip)
	}
}

// Options configure a Snapshot.
type Options struct {
	// Allocator backs decoded strings. Defaults to buffer.Heap.
	Allocator buffer.Allocator
	Policy    Policy
	Logger    *slog.Logger
}

// RecordError reports which array index failed to materialize.
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("window %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// borrowed wraps the registry's array. It allows reads and exactly one
// native release.
type borrowed struct {
	arr      native.Array
	released bool
}

func (b *borrowed) len() int {
	if b.released {
		return 0
	}
	return b.arr.Len()
}

func (b *borrowed) at(i int) native.Record {
	if b.released {
		panic("snapshot: materialize after release")
	}
	n := b.arr.Len()
	if i < 0 || i >= n {
		panic(fmt.Sprintf("snapshot: index %d out of range [0, %d)", i, n))
	}
	return b.arr.At(i)
}

func (b *borrowed) release() bool {
	if b.released {
		return false
	}
	b.released = true
	b.arr.Release()
	return true
}

// Snapshot is one enumeration of the registry. It is not safe for
// concurrent use.
type Snapshot struct {
	id     string
	handle borrowed
	alloc  buffer.Allocator
	policy Policy
	logger *slog.Logger
}

// Acquire enumerates the registry once. A nil array from the registry is
// reported as ErrRegistryUnavailable, never as an empty snapshot.
func Acquire(reg native.Registry, opts Options) (*Snapshot, error) {
	arr, err := reg.Enumerate()
	if arr == nil {
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
		}
		return nil, ErrRegistryUnavailable
	}

	s := &Snapshot{
		id:     uuid.NewString(),
		handle: borrowed{arr: arr},
		alloc:  opts.Allocator,
		policy: opts.Policy,
		logger: opts.Logger,
	}
	if s.alloc == nil {
		s.alloc = buffer.Heap
	}
	if s.policy == "" {
		s.policy = PolicyFailFast
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	s.logger = s.logger.With("snapshot_id", s.id)
	if err != nil {
		s.logger.Debug("registry enumerated with error", "error", err)
	}
	s.logger.Debug("registry enumerated", "count", arr.Len())
	return s, nil
}

// With acquires a snapshot, passes it to fn and releases it on every
// return path.
func With(reg native.Registry, opts Options, fn func(*Snapshot) error) error {
	s, err := Acquire(reg, opts)
	if err != nil {
		return err
	}
	defer s.Release()
	return fn(s)
}

// ID identifies the snapshot in logs.
func (s *Snapshot) ID() string { return s.id }

// Count is the number of records in the enumeration.
func (s *Snapshot) Count() int { return s.handle.len() }

// Materialize builds the record at index i, which must be in
// [0, Count()). On failure every buffer allocated for the record has
// already been released.
func (s *Snapshot) Materialize(i int) (*Record, error) {
	rec, err := materialize(s.handle.at(i), s.alloc)
	if err != nil {
		return nil, &RecordError{Index: i, Err: err}
	}
	return rec, nil
}

// MaterializeAll builds every record in enumeration order, applying the
// snapshot's policy to failing records. Under PolicyFailFast the records
// built so far are released before the error is returned.
func (s *Snapshot) MaterializeAll() (*Batch, error) {
	n := s.Count()
	b := &Batch{Records: make([]*Record, 0, n)}
	for i := 0; i < n; i++ {
		rec, err := s.Materialize(i)
		if err == nil {
			b.Records = append(b.Records, rec)
			continue
		}
		if s.policy != PolicySkip {
			b.Release()
			return nil, err
		}
		s.logger.Warn("skipping window", "index", i, "error", err)
		var re *RecordError
		errors.As(err, &re)
		b.Skipped = append(b.Skipped, re)
	}
	return b, nil
}

// Release relinquishes the native array. Records already materialized
// stay valid and must be released separately.
func (s *Snapshot) Release() {
	if s.handle.release() {
		s.logger.Debug("registry released")
	}
}

func materialize(rec native.Record, alloc buffer.Allocator) (_ *Record, err error) {
	r := &Record{}
	defer func() {
		if err != nil {
			r.arena.Release()
		}
	}()

	if r.Alpha, err = extract.Number[float64](rec, native.KeyAlpha); err != nil {
		return nil, err
	}
	if r.ID, err = unsigned(rec, native.KeyNumber); err != nil {
		return nil, err
	}
	if r.OwnerPID, err = unsigned(rec, native.KeyOwnerPID); err != nil {
		return nil, err
	}
	if r.Bounds, err = extract.Rectangle(rec, native.KeyBounds); err != nil {
		return nil, err
	}
	if r.OwnerName, err = extract.Text(rec, native.KeyOwnerName, alloc); err != nil {
		return nil, err
	}
	r.arena.Keep(r.OwnerName)
	if r.Name, err = extract.Text(rec, native.KeyName, alloc); err != nil {
		return nil, err
	}
	r.arena.Keep(r.Name)
	return r, nil
}

func unsigned(rec native.Record, key native.Key) (uint64, error) {
	v, err := extract.Number[int64](rec, key)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, &extract.FieldError{Key: key, Err: extract.ErrWrongNativeType}
	}
	return uint64(v), nil
}
