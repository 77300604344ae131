package native

import (
	"math"
	"testing"
)

func TestNumberCoercion(t *testing.T) {
	tests := []struct {
		name    string
		n       NumberDecoder
		wantF   float64
		wantFOK bool
		wantI   int64
		wantIOK bool
	}{
		{"integral float", Float(42), 42, true, 42, true},
		{"fractional float", Float(0.8), 0.8, true, 0, false},
		{"nan", Float(math.NaN()), math.NaN(), true, 0, false},
		{"huge float", Float(1e20), 1e20, true, 0, false},
		{"small int", Int(-7), -7, true, -7, true},
		{"int beyond 2^53", Int(1<<53 + 1), 0, false, 1<<53 + 1, true},
		{"max int", Int(math.MaxInt64), 0, false, math.MaxInt64, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, fok := tt.n.DecodeFloat64()
			if fok != tt.wantFOK || (fok && !math.IsNaN(tt.wantF) && f != tt.wantF) {
				t.Errorf("DecodeFloat64() = %v, %v; want %v, %v", f, fok, tt.wantF, tt.wantFOK)
			}
			i, iok := tt.n.DecodeInt64()
			if iok != tt.wantIOK || (iok && i != tt.wantI) {
				t.Errorf("DecodeInt64() = %v, %v; want %v, %v", i, iok, tt.wantI, tt.wantIOK)
			}
		})
	}
}

func TestString_CapacityCoversWorstCase(t *testing.T) {
	for _, s := range []string{"", "bash", "Über", "日本語", "😀x"} {
		str := String(s)
		buf := make([]byte, str.Capacity())
		n, ok := str.Decode(buf)
		if !ok {
			t.Fatalf("Decode(%q) failed with capacity %d", s, len(buf))
		}
		if string(buf[:n]) != s || buf[n] != 0 {
			t.Fatalf("Decode(%q) wrote %q", s, buf[:n+1])
		}
	}
}

func TestString_DecodeRejectsInvalidUTF8AndShortBuffer(t *testing.T) {
	if _, ok := String("\xff\xfe").Decode(make([]byte, 16)); ok {
		t.Fatal("expected invalid UTF-8 to fail")
	}
	if _, ok := String("abcd").Decode(make([]byte, 4)); ok {
		t.Fatal("expected short buffer to fail")
	}
}

func TestDict_LookupAndRect(t *testing.T) {
	d := Dict{KeyBounds: DictValue(RectDict(1, 2, 3, 4))}
	if !d.Lookup(KeyName).IsAbsent() {
		t.Fatal("missing key should be absent")
	}
	r, ok := d.Lookup(KeyBounds).AsRect()
	if !ok {
		t.Fatalf("bounds kind = %v, want dictionary", d.Lookup(KeyBounds).Kind())
	}
	x, y, w, h, ok := r.DecodeRect()
	if !ok || x != 1 || y != 2 || w != 3 || h != 4 {
		t.Fatalf("DecodeRect() = %v %v %v %v %v", x, y, w, h, ok)
	}

	partial := RectDict(1, 2, 3, 4)
	delete(partial, KeyRectHeight)
	if _, _, _, _, ok := partial.DecodeRect(); ok {
		t.Fatal("expected rect without Height to fail")
	}
}

func TestValue_NilConstructorsAreAbsent(t *testing.T) {
	if !NumberValue(nil).IsAbsent() || !DictValue(nil).IsAbsent() || !TextValue(nil).IsAbsent() {
		t.Fatal("nil payloads should produce absent values")
	}
	if OtherValue().Kind() != KindOther {
		t.Fatal("OtherValue should be KindOther")
	}
}
