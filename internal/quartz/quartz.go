//go:build darwin && cgo

// Package quartz reads the window list from the macOS window server via
// CGWindowListCopyWindowInfo.
package quartz

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreFoundation/CoreFoundation.h>
#include <CoreGraphics/CoreGraphics.h>

enum {
	WS_KIND_ABSENT = 0,
	WS_KIND_NUMBER,
	WS_KIND_DICT,
	WS_KIND_TEXT,
	WS_KIND_OTHER,
};

static CFArrayRef ws_copy_windows(int include_offscreen) {
	CGWindowListOption opt = include_offscreen
		? kCGWindowListOptionAll
		: (kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements);
	return CGWindowListCopyWindowInfo(opt, kCGNullWindowID);
}

static CFIndex ws_count(CFArrayRef a) { return CFArrayGetCount(a); }

static CFDictionaryRef ws_at(CFArrayRef a, CFIndex i) {
	return (CFDictionaryRef)CFArrayGetValueAtIndex(a, i);
}

static void ws_release(CFArrayRef a) { CFRelease(a); }

static CFStringRef ws_key(int k) {
	switch (k) {
	case 0: return kCGWindowNumber;
	case 1: return kCGWindowOwnerPID;
	case 2: return kCGWindowOwnerName;
	case 3: return kCGWindowName;
	case 4: return kCGWindowAlpha;
	case 5: return kCGWindowBounds;
	}
	return NULL;
}

static CFTypeRef ws_lookup(CFDictionaryRef d, int k, int *kind) {
	CFStringRef key = ws_key(k);
	CFTypeRef v = key ? CFDictionaryGetValue(d, key) : NULL;
	if (v == NULL) {
		*kind = WS_KIND_ABSENT;
		return NULL;
	}
	CFTypeID t = CFGetTypeID(v);
	if (t == CFNumberGetTypeID()) *kind = WS_KIND_NUMBER;
	else if (t == CFDictionaryGetTypeID()) *kind = WS_KIND_DICT;
	else if (t == CFStringGetTypeID()) *kind = WS_KIND_TEXT;
	else *kind = WS_KIND_OTHER;
	return v;
}

static int ws_f64(CFTypeRef v, double *out) {
	return CFNumberGetValue((CFNumberRef)v, kCFNumberFloat64Type, out) ? 1 : 0;
}

static int ws_i64(CFTypeRef v, long long *out) {
	return CFNumberGetValue((CFNumberRef)v, kCFNumberSInt64Type, out) ? 1 : 0;
}

static int ws_rect(CFTypeRef v, double *x, double *y, double *w, double *h) {
	CGRect r;
	if (!CGRectMakeWithDictionaryRepresentation((CFDictionaryRef)v, &r)) return 0;
	*x = r.origin.x;
	*y = r.origin.y;
	*w = r.size.width;
	*h = r.size.height;
	return 1;
}

static CFIndex ws_text_capacity(CFTypeRef v) {
	CFIndex n = CFStringGetLength((CFStringRef)v);
	return CFStringGetMaximumSizeForEncoding(n, kCFStringEncodingUTF8) + 1;
}

static int ws_text_decode(CFTypeRef v, char *buf, CFIndex size) {
	return CFStringGetCString((CFStringRef)v, buf, size, kCFStringEncodingUTF8) ? 1 : 0;
}
*/
import "C"

import (
	"bytes"
	"unsafe"

	"github.com/1broseidon/winsnap/internal/native"
)

var keyCodes = map[native.Key]C.int{
	native.KeyNumber:    0,
	native.KeyOwnerPID:  1,
	native.KeyOwnerName: 2,
	native.KeyName:      3,
	native.KeyAlpha:     4,
	native.KeyBounds:    5,
}

// Registry is the window server's window list.
type Registry struct {
	// IncludeOffscreen lists every window instead of on-screen ones only.
	IncludeOffscreen bool
}

var _ native.Registry = (*Registry)(nil)

// Enumerate copies the current window list. The window server returns
// NULL when it cannot enumerate, e.g. without screen recording access.
func (r *Registry) Enumerate() (native.Array, error) {
	all := C.int(0)
	if r.IncludeOffscreen {
		all = 1
	}
	ref := C.ws_copy_windows(all)
	if ref == 0 {
		return nil, nil
	}
	return &cfArray{ref: ref}, nil
}

type cfArray struct {
	ref C.CFArrayRef
}

func (a *cfArray) Len() int { return int(C.ws_count(a.ref)) }

func (a *cfArray) At(i int) native.Record {
	return cfDict{ref: C.ws_at(a.ref, C.CFIndex(i))}
}

func (a *cfArray) Release() { C.ws_release(a.ref) }

// cfDict is borrowed from its array.
type cfDict struct {
	ref C.CFDictionaryRef
}

func (d cfDict) Lookup(key native.Key) native.Value {
	code, ok := keyCodes[key]
	if !ok {
		return native.Absent()
	}
	var kind C.int
	v := C.ws_lookup(d.ref, code, &kind)
	switch kind {
	case C.WS_KIND_NUMBER:
		return native.NumberValue(cfNumber{v})
	case C.WS_KIND_DICT:
		return native.DictValue(cfRect{v})
	case C.WS_KIND_TEXT:
		return native.TextValue(cfString{v})
	case C.WS_KIND_OTHER:
		return native.OtherValue()
	default:
		return native.Absent()
	}
}

type cfNumber struct{ ref C.CFTypeRef }

func (n cfNumber) DecodeFloat64() (float64, bool) {
	var out C.double
	ok := C.ws_f64(n.ref, &out) != 0
	return float64(out), ok
}

func (n cfNumber) DecodeInt64() (int64, bool) {
	var out C.longlong
	ok := C.ws_i64(n.ref, &out) != 0
	return int64(out), ok
}

type cfRect struct{ ref C.CFTypeRef }

func (r cfRect) DecodeRect() (x, y, w, h float64, ok bool) {
	var cx, cy, cw, ch C.double
	if C.ws_rect(r.ref, &cx, &cy, &cw, &ch) == 0 {
		return 0, 0, 0, 0, false
	}
	return float64(cx), float64(cy), float64(cw), float64(ch), true
}

type cfString struct{ ref C.CFTypeRef }

func (s cfString) Capacity() int { return int(C.ws_text_capacity(s.ref)) }

func (s cfString) Decode(buf []byte) (int, bool) {
	if len(buf) == 0 {
		return 0, false
	}
	ptr := (*C.char)(unsafe.Pointer(&buf[0]))
	if C.ws_text_decode(s.ref, ptr, C.CFIndex(len(buf))) == 0 {
		return 0, false
	}
	n := bytes.IndexByte(buf, 0)
	if n < 0 {
		return 0, false
	}
	return n, true
}
