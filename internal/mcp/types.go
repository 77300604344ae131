package mcp

import "github.com/1broseidon/winsnap/internal/render"

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	IncludeOffscreen *bool `json:"include_offscreen,omitempty" jsonschema:"Include minimized windows and windows on other desktops (default: config include_offscreen)"`
	SkipInvalid      *bool `json:"skip_invalid,omitempty" jsonschema:"Skip windows whose fields cannot be decoded instead of failing the call (default: config on_record_error)"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	SnapshotID string          `json:"snapshot_id"`
	Windows    []render.Window `json:"windows"`
	Skipped    []string        `json:"skipped,omitempty"`
}
