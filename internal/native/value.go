package native

import "fmt"

// Kind tags the dynamic type of a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNumber
	KindDict
	KindText
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNumber:
		return "number"
	case KindDict:
		return "dictionary"
	case KindText:
		return "text"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is the tagged result of a record lookup. The zero Value is absent.
type Value struct {
	kind Kind
	num  NumberDecoder
	rect RectDecoder
	text TextDecoder
}

// Absent returns the absent Value.
func Absent() Value { return Value{} }

// NumberValue tags n as a number.
func NumberValue(n NumberDecoder) Value {
	if n == nil {
		return Value{}
	}
	return Value{kind: KindNumber, num: n}
}

// DictValue tags r as a dictionary that can be decoded as a rectangle.
func DictValue(r RectDecoder) Value {
	if r == nil {
		return Value{}
	}
	return Value{kind: KindDict, rect: r}
}

// TextValue tags t as a string.
func TextValue(t TextDecoder) Value {
	if t == nil {
		return Value{}
	}
	return Value{kind: KindText, text: t}
}

// OtherValue is a present value of a type the bridge does not decode.
func OtherValue() Value { return Value{kind: KindOther} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// AsNumber narrows v to a number.
func (v Value) AsNumber() (NumberDecoder, bool) {
	return v.num, v.kind == KindNumber
}

// AsRect narrows v to a rectangle dictionary.
func (v Value) AsRect() (RectDecoder, bool) {
	return v.rect, v.kind == KindDict
}

// AsText narrows v to a string.
func (v Value) AsText() (TextDecoder, bool) {
	return v.text, v.kind == KindText
}
