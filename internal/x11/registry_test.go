package x11

import (
	"testing"

	"github.com/1broseidon/winsnap/internal/native"
)

func TestVisible(t *testing.T) {
	tests := []struct {
		name       string
		states     []string
		desktop    uint
		hasDesktop bool
		current    uint
		hasCurrent bool
		want       bool
	}{
		{"same desktop", nil, 1, true, 1, true, true},
		{"other desktop", nil, 2, true, 1, true, false},
		{"sticky", nil, 0xFFFFFFFF, true, 1, true, true},
		{"hidden", []string{"_NET_WM_STATE_HIDDEN"}, 1, true, 1, true, false},
		{"no desktop info", []string{"_NET_WM_STATE_ABOVE"}, 0, false, 0, false, true},
		{"unknown current desktop", nil, 3, true, 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := visible(tt.states, tt.desktop, tt.hasDesktop, tt.current, tt.hasCurrent)
			if got != tt.want {
				t.Errorf("visible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpacityFraction(t *testing.T) {
	tests := []struct {
		in   uint
		want float64
	}{
		{0, 0},
		{0xFFFFFFFF, 1},
		{0x7FFFFFFF, float64(0x7FFFFFFF) / 0xFFFFFFFF},
	}
	for _, tt := range tests {
		if got := opacityFraction(tt.in); got != tt.want {
			t.Errorf("opacityFraction(%#x) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestComplete(t *testing.T) {
	rect := native.RectDict(0, 0, 10, 10)
	tests := []struct {
		name    string
		clients []client
		want    []uint32
	}{
		{"all complete", []client{{id: 1, pid: 10, hasPID: true, bounds: rect}, {id: 2, pid: 20, hasPID: true, bounds: rect}}, []uint32{1, 2}},
		{"missing pid", []client{{id: 1, bounds: rect}, {id: 2, pid: 20, hasPID: true, bounds: rect}}, []uint32{2}},
		{"pid zero is still a pid", []client{{id: 1, pid: 0, hasPID: true, bounds: rect}}, []uint32{1}},
		{"destroyed window", []client{{id: 1, pid: 10, hasPID: true}, {id: 2, pid: 20, hasPID: true, bounds: rect}}, []uint32{2}},
		{"nothing usable", []client{{id: 1}, {id: 2, hasPID: true}}, nil},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := complete(tt.clients)
			if len(got) != len(tt.want) {
				t.Fatalf("complete() kept %d clients, want %d", len(got), len(tt.want))
			}
			for i, c := range got {
				if uint32(c.id) != tt.want[i] {
					t.Errorf("client %d = %d, want %d", i, c.id, tt.want[i])
				}
			}
		})
	}
}

func TestCompleteRecordsHaveRequiredFields(t *testing.T) {
	clients := complete([]client{
		{id: 4, bounds: native.RectDict(1, 2, 3, 4)},
		{id: 5, pid: 55, hasPID: true, bounds: native.RectDict(1, 2, 3, 4)},
	})
	arr := &windowArray{clients: clients}
	if arr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", arr.Len())
	}
	rec := arr.At(0)
	pid, ok := rec.Lookup(native.KeyOwnerPID).AsNumber()
	if !ok {
		t.Fatal("owner pid should be present")
	}
	if v, ok := pid.DecodeInt64(); !ok || v != 55 {
		t.Fatalf("owner pid = %d, %v; want 55", v, ok)
	}
	if rec.Lookup(native.KeyBounds).IsAbsent() {
		t.Fatal("bounds should be present")
	}
}

func TestLatin1ToUTF8(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"caf\xe9", "café"},
		{"na\xefve \xa9", "naïve ©"},
		{"café", "café"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := latin1ToUTF8(tt.in); got != tt.want {
			t.Errorf("latin1ToUTF8(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLatin1TitleDecodesAsText(t *testing.T) {
	s := native.String(latin1ToUTF8("caf\xe9"))
	buf := make([]byte, s.Capacity())
	n, ok := s.Decode(buf)
	if !ok || string(buf[:n]) != "café" {
		t.Fatalf("Decode() = %q, %v; want café", buf[:n], ok)
	}
}
