// Package native describes the boundary to a host window registry.
//
// A registry hands out one borrowed array of type-erased records. Records
// are addressed only through opaque field keys, and every lookup yields a
// tagged Value that callers narrow before decoding.
package native

// Key is an opaque field selector understood by a registry backend.
type Key string

// Field keys for the window registry. The values match the CoreGraphics
// dictionary key names; other backends map them onto their own properties.
const (
	KeyNumber    Key = "kCGWindowNumber"
	KeyOwnerPID  Key = "kCGWindowOwnerPID"
	KeyOwnerName Key = "kCGWindowOwnerName"
	KeyName      Key = "kCGWindowName"
	KeyAlpha     Key = "kCGWindowAlpha"
	KeyBounds    Key = "kCGWindowBounds"
)

// Keys used inside a bounds dictionary.
const (
	KeyRectX      Key = "X"
	KeyRectY      Key = "Y"
	KeyRectWidth  Key = "Width"
	KeyRectHeight Key = "Height"
)

// Registry enumerates the windows currently known to the host.
type Registry interface {
	// Enumerate returns a handle to all current window records. A nil
	// Array means the host could not enumerate (e.g. permission denied);
	// err, when set, carries the backend's reason. An error returned with a
	// non-nil Array is advisory and only logged.
	Enumerate() (Array, error)
}

// Array is a borrowed, ordered collection of records. Records returned by
// At stay owned by the array and must not outlive Release.
type Array interface {
	Len() int
	At(i int) Record
	// Release relinquishes the array. It is not idempotent.
	Release()
}

// Record is a dictionary-like native object.
type Record interface {
	// Lookup returns the value stored under key, or a Value of KindAbsent.
	Lookup(key Key) Value
}

// NumberDecoder converts a native number into one of the supported
// representations. ok is false when the conversion would be lossy.
type NumberDecoder interface {
	DecodeFloat64() (v float64, ok bool)
	DecodeInt64() (v int64, ok bool)
}

// RectDecoder decodes a structured rectangle value.
type RectDecoder interface {
	DecodeRect() (x, y, w, h float64, ok bool)
}

// TextDecoder decodes a native string into a caller supplied buffer.
type TextDecoder interface {
	// Capacity is the buffer size needed for the worst-case encoding of
	// the string, including one terminator byte.
	Capacity() int
	// Decode writes the encoded string followed by a zero byte into buf
	// and returns the number of bytes written, excluding the terminator.
	Decode(buf []byte) (n int, ok bool)
}
