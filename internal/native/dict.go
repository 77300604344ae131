package native

import (
	"math"
	"unicode/utf8"
)

// Float is an in-memory native number holding a double.
type Float float64

func (f Float) DecodeFloat64() (float64, bool) { return float64(f), true }

// DecodeInt64 succeeds only when f is integral and fits in an int64.
func (f Float) DecodeInt64() (int64, bool) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false
	}
	if v < -(1<<63) || v >= 1<<63 {
		return 0, false
	}
	return int64(v), true
}

// Int is an in-memory native number holding a signed integer.
type Int int64

// DecodeFloat64 succeeds only when i is exactly representable.
func (i Int) DecodeFloat64() (float64, bool) {
	f := float64(i)
	if f >= 1<<63 || int64(f) != int64(i) {
		return 0, false
	}
	return f, true
}

func (i Int) DecodeInt64() (int64, bool) { return int64(i), true }

// String is an in-memory native string.
type String string

// Capacity reserves three bytes per UTF-16 code unit plus a terminator,
// the worst case for UTF-8.
func (s String) Capacity() int {
	units := 0
	for _, r := range string(s) {
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
	}
	return units*3 + 1
}

func (s String) Decode(buf []byte) (int, bool) {
	if !utf8.ValidString(string(s)) || len(buf) < len(s)+1 {
		return 0, false
	}
	n := copy(buf, s)
	buf[n] = 0
	return n, true
}

// Dict is an in-memory dictionary record. It doubles as a rectangle
// dictionary when it carries X, Y, Width and Height numbers.
type Dict map[Key]Value

var (
	_ Record      = Dict(nil)
	_ RectDecoder = Dict(nil)
)

func (d Dict) Lookup(key Key) Value {
	v, ok := d[key]
	if !ok {
		return Value{}
	}
	return v
}

func (d Dict) DecodeRect() (x, y, w, h float64, ok bool) {
	parts := [4]float64{}
	for i, k := range [4]Key{KeyRectX, KeyRectY, KeyRectWidth, KeyRectHeight} {
		n, isNum := d.Lookup(k).AsNumber()
		if !isNum {
			return 0, 0, 0, 0, false
		}
		f, fok := n.DecodeFloat64()
		if !fok {
			return 0, 0, 0, 0, false
		}
		parts[i] = f
	}
	return parts[0], parts[1], parts[2], parts[3], true
}

// RectDict builds the dictionary representation of a rectangle.
func RectDict(x, y, w, h float64) Dict {
	return Dict{
		KeyRectX:      NumberValue(Float(x)),
		KeyRectY:      NumberValue(Float(y)),
		KeyRectWidth:  NumberValue(Float(w)),
		KeyRectHeight: NumberValue(Float(h)),
	}
}

// Slice is an in-memory Array. OnRelease, when set, runs on Release.
type Slice struct {
	Records   []Record
	OnRelease func()
}

var _ Array = (*Slice)(nil)

func (s *Slice) Len() int { return len(s.Records) }

func (s *Slice) At(i int) Record { return s.Records[i] }

func (s *Slice) Release() {
	if s.OnRelease != nil {
		s.OnRelease()
	}
}
