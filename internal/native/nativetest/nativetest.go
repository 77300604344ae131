// Package nativetest provides instrumented in-memory registries for tests.
package nativetest

import (
	"errors"

	"github.com/1broseidon/winsnap/internal/native"
)

// ErrDenied is returned by a Registry with Unavailable set.
var ErrDenied = errors.New("nativetest: enumeration denied")

// Registry is a fixture registry that counts every call made into it.
type Registry struct {
	Records []native.Record
	// Unavailable makes Enumerate return the nil sentinel.
	Unavailable bool

	Enumerations int
	Releases     int
	Lookups      int
	Accesses     int
}

var _ native.Registry = (*Registry)(nil)

// New returns a registry holding records.
func New(records ...native.Record) *Registry {
	return &Registry{Records: records}
}

// Calls is the total number of calls made into the registry.
func (r *Registry) Calls() int {
	return r.Enumerations + r.Releases + r.Lookups + r.Accesses
}

func (r *Registry) Enumerate() (native.Array, error) {
	r.Enumerations++
	if r.Unavailable {
		return nil, ErrDenied
	}
	return &array{reg: r}, nil
}

type array struct {
	reg *Registry
}

func (a *array) Len() int {
	a.reg.Accesses++
	return len(a.reg.Records)
}

func (a *array) At(i int) native.Record {
	a.reg.Accesses++
	return &record{reg: a.reg, inner: a.reg.Records[i]}
}

func (a *array) Release() {
	a.reg.Releases++
}

type record struct {
	reg   *Registry
	inner native.Record
}

func (r *record) Lookup(key native.Key) native.Value {
	r.reg.Lookups++
	return r.inner.Lookup(key)
}

// Window describes one fixture window. Empty OwnerName or Name leave the
// field out of the record.
type Window struct {
	ID         int64
	OwnerPID   int64
	Alpha      float64
	X, Y, W, H float64
	OwnerName  string
	Name       string
}

// Dict converts w into the native dictionary a registry would return.
func (w Window) Dict() native.Dict {
	d := native.Dict{
		native.KeyNumber:   native.NumberValue(native.Int(w.ID)),
		native.KeyOwnerPID: native.NumberValue(native.Int(w.OwnerPID)),
		native.KeyAlpha:    native.NumberValue(native.Float(w.Alpha)),
		native.KeyBounds:   native.DictValue(native.RectDict(w.X, w.Y, w.W, w.H)),
	}
	if w.OwnerName != "" {
		d[native.KeyOwnerName] = native.TextValue(native.String(w.OwnerName))
	}
	if w.Name != "" {
		d[native.KeyName] = native.TextValue(native.String(w.Name))
	}
	return d
}

// BrokenText is a string whose decode step always fails.
type BrokenText struct {
	Cap int
}

func (b BrokenText) Capacity() int { return b.Cap }

func (BrokenText) Decode([]byte) (int, bool) { return 0, false }
