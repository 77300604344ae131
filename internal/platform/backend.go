// Package platform selects the window registry for the running OS.
package platform

import (
	"errors"
	"runtime"

	"github.com/1broseidon/winsnap/internal/native"
)

// ErrUnsupported is returned by the registry on platforms without a backend.
var ErrUnsupported = errors.New("no window registry backend for " + runtime.GOOS)

// Options select how the host registry enumerates windows.
type Options struct {
	// IncludeOffscreen lists windows that are not currently on screen.
	IncludeOffscreen bool
}

// unsupported always fails to enumerate.
type unsupported struct{}

func (unsupported) Enumerate() (native.Array, error) { return nil, ErrUnsupported }
