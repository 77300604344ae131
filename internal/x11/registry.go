package x11

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"golang.org/x/text/encoding/charmap"

	"github.com/1broseidon/winsnap/internal/native"
)

// Registry enumerates EWMH managed client windows. Each Enumerate opens a
// dedicated connection that lives until the returned array is released.
type Registry struct {
	// IncludeOffscreen keeps hidden windows and windows on other desktops.
	IncludeOffscreen bool
}

var _ native.Registry = (*Registry)(nil)

// Enumerate lists client windows front to back.
func (r *Registry) Enumerate() (native.Array, error) {
	conn, err := NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}

	stacking, err := ewmh.ClientListStackingGet(conn.XUtil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to read _NET_CLIENT_LIST_STACKING: %w", err)
	}

	// Stacking order is bottom to top.
	candidates := make([]client, 0, len(stacking))
	for i := len(stacking) - 1; i >= 0; i-- {
		id := stacking[i]
		if !r.IncludeOffscreen && !conn.isOnScreen(id) {
			continue
		}
		c := client{id: id}
		if pid, err := ewmh.WmPidGet(conn.XUtil, id); err == nil {
			c.pid, c.hasPID = pid, true
		}
		if rect, ok := conn.windowRect(id); ok {
			c.bounds = rect
		}
		candidates = append(candidates, c)
	}

	return &windowArray{conn: conn, clients: complete(candidates)}, nil
}

// client holds the required fields read while enumerating, so a window
// that disappears afterwards still yields a whole record.
type client struct {
	id     xproto.Window
	pid    uint
	hasPID bool
	bounds native.Dict
}

// complete drops clients without _NET_WM_PID or readable geometry.
// _NET_WM_PID is optional and a window may be destroyed mid-enumeration.
func complete(clients []client) []client {
	out := clients[:0]
	for _, c := range clients {
		if c.hasPID && c.bounds != nil {
			out = append(out, c)
		}
	}
	return out
}

type windowArray struct {
	conn    *Connection
	clients []client
}

func (a *windowArray) Len() int { return len(a.clients) }

func (a *windowArray) At(i int) native.Record {
	return &windowRecord{conn: a.conn, client: a.clients[i]}
}

func (a *windowArray) Release() {
	a.conn.Close()
}

// windowRecord answers optional lookups with live X property reads.
type windowRecord struct {
	conn *Connection
	client
}

func (w *windowRecord) Lookup(key native.Key) native.Value {
	switch key {
	case native.KeyNumber:
		return native.NumberValue(native.Int(w.id))
	case native.KeyOwnerPID:
		return native.NumberValue(native.Int(w.pid))
	case native.KeyAlpha:
		return native.NumberValue(native.Float(w.conn.opacity(w.id)))
	case native.KeyBounds:
		return native.DictValue(w.bounds)
	case native.KeyOwnerName:
		wmClass, err := icccm.WmClassGet(w.conn.XUtil, w.id)
		if err != nil || strings.TrimSpace(wmClass.Class) == "" {
			return native.Absent()
		}
		return native.TextValue(native.String(strings.TrimSpace(wmClass.Class)))
	case native.KeyName:
		title, ok := w.conn.windowTitle(w.id)
		if !ok {
			return native.Absent()
		}
		return native.TextValue(native.String(title))
	default:
		return native.Absent()
	}
}

// isOnScreen drops hidden windows and windows on other desktops.
func (c *Connection) isOnScreen(windowID xproto.Window) bool {
	states, _ := ewmh.WmStateGet(c.XUtil, windowID)
	current, curErr := ewmh.CurrentDesktopGet(c.XUtil)
	desktop, deskErr := ewmh.WmDesktopGet(c.XUtil, windowID)
	return visible(states, desktop, deskErr == nil, current, curErr == nil)
}

func visible(states []string, desktop uint, hasDesktop bool, current uint, hasCurrent bool) bool {
	for _, state := range states {
		if state == "_NET_WM_STATE_HIDDEN" {
			return false
		}
	}
	if !hasDesktop || !hasCurrent {
		return true
	}
	// 0xFFFFFFFF means the window is on all desktops (sticky)
	return desktop == 0xFFFFFFFF || desktop == current
}

// opacity reads _NET_WM_WINDOW_OPACITY. Windows without the property are
// fully opaque.
func (c *Connection) opacity(windowID xproto.Window) float64 {
	v, err := xprop.PropValNum(xprop.GetProperty(c.XUtil, windowID, "_NET_WM_WINDOW_OPACITY"))
	if err != nil {
		return 1.0
	}
	return opacityFraction(v)
}

func opacityFraction(v uint) float64 {
	const opaque = 0xFFFFFFFF
	if v >= opaque {
		return 1.0
	}
	return float64(v) / opaque
}

// windowRect returns root-relative geometry as a bounds dictionary.
func (c *Connection) windowRect(windowID xproto.Window) (native.Dict, bool) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return nil, false
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return nil, false
	}

	return native.RectDict(
		float64(translate.DstX),
		float64(translate.DstY),
		float64(geom.Width),
		float64(geom.Height),
	), true
}

func (c *Connection) windowTitle(windowID xproto.Window) (string, bool) {
	if title, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title, true
		}
	}
	if title, err := icccm.WmNameGet(c.XUtil, windowID); err == nil {
		if title = strings.TrimSpace(latin1ToUTF8(title)); title != "" {
			return title, true
		}
	}
	return "", false
}

// latin1ToUTF8 converts a WM_NAME STRING property. Many clients store
// UTF-8 there anyway, so valid UTF-8 is kept as is.
func latin1ToUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	out, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return out
}
