//go:build linux

package platform

import (
	"github.com/1broseidon/winsnap/internal/native"
	"github.com/1broseidon/winsnap/internal/x11"
)

// NewRegistry returns the X11 client list registry.
func NewRegistry(opts Options) native.Registry {
	return &x11.Registry{IncludeOffscreen: opts.IncludeOffscreen}
}
