// Package extract pulls typed fields out of type-erased native records.
//
// Absence and malformed values are reported separately so callers can
// treat optional and required fields differently.
package extract

import (
	"errors"
	"fmt"

	"github.com/1broseidon/winsnap/internal/buffer"
	"github.com/1broseidon/winsnap/internal/native"
)

var (
	ErrFieldAbsent        = errors.New("field absent")
	ErrWrongNativeType    = errors.New("wrong native type")
	ErrRectDecodeFailed   = errors.New("rectangle decode failed")
	ErrTextEncodingFailed = errors.New("text encoding failed")
)

// FieldError reports which field an extraction failed on.
type FieldError struct {
	Key native.Key
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Key, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldErr(key native.Key, err error) error {
	return &FieldError{Key: key, Err: err}
}

// Rect is a screen-space bounding box.
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Numeric lists the number representations a registry can decode into.
type Numeric interface {
	float64 | int64
}

// Number reads the number stored under key as T.
func Number[T Numeric](rec native.Record, key native.Key) (T, error) {
	v := rec.Lookup(key)
	if v.IsAbsent() {
		return 0, fieldErr(key, ErrFieldAbsent)
	}
	n, ok := v.AsNumber()
	if !ok {
		return 0, fieldErr(key, ErrWrongNativeType)
	}

	var zero T
	switch any(zero).(type) {
	case float64:
		f, ok := n.DecodeFloat64()
		if !ok {
			return 0, fieldErr(key, ErrWrongNativeType)
		}
		return T(f), nil
	default:
		i, ok := n.DecodeInt64()
		if !ok {
			return 0, fieldErr(key, ErrWrongNativeType)
		}
		return T(i), nil
	}
}

// Rectangle decodes the rectangle dictionary stored under key.
func Rectangle(rec native.Record, key native.Key) (Rect, error) {
	v := rec.Lookup(key)
	if v.IsAbsent() {
		return Rect{}, fieldErr(key, ErrFieldAbsent)
	}
	d, ok := v.AsRect()
	if !ok {
		return Rect{}, fieldErr(key, ErrRectDecodeFailed)
	}
	x, y, w, h, ok := d.DecodeRect()
	if !ok {
		return Rect{}, fieldErr(key, ErrRectDecodeFailed)
	}
	return Rect{X: x, Y: y, W: w, H: h}, nil
}

// Text decodes the string stored under key into a buffer from alloc.
// An absent field yields (nil, nil). On success the caller owns the
// returned buffer; on failure nothing stays allocated.
func Text(rec native.Record, key native.Key, alloc buffer.Allocator) (*buffer.Owned, error) {
	v := rec.Lookup(key)
	if v.IsAbsent() {
		return nil, nil
	}
	t, ok := v.AsText()
	if !ok {
		return nil, fieldErr(key, ErrTextEncodingFailed)
	}

	size := t.Capacity()
	if size < 1 {
		size = 1
	}
	buf := alloc.Alloc(size)
	n, ok := t.Decode(buf)
	if !ok || n < 0 || n >= len(buf) {
		alloc.Free(buf)
		return nil, fieldErr(key, ErrTextEncodingFailed)
	}
	return buffer.Adopt(alloc, buf, n), nil
}
