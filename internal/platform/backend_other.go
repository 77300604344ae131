//go:build !linux && !(darwin && cgo)

package platform

import "github.com/1broseidon/winsnap/internal/native"

// NewRegistry returns a registry that reports ErrUnsupported. On macOS the
// window server is only reachable with cgo enabled.
func NewRegistry(Options) native.Registry {
	return unsupported{}
}
