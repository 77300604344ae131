//go:build darwin && cgo

package platform

import (
	"github.com/1broseidon/winsnap/internal/native"
	"github.com/1broseidon/winsnap/internal/quartz"
)

// NewRegistry returns the window server registry.
func NewRegistry(opts Options) native.Registry {
	return &quartz.Registry{IncludeOffscreen: opts.IncludeOffscreen}
}
