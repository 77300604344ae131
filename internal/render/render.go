// Package render prints materialized windows.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/winsnap/internal/extract"
	"github.com/1broseidon/winsnap/internal/snapshot"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name. Empty selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, yaml or json)", s)
	}
}

// Window is a detached copy of a record, safe to keep after the record
// is released.
type Window struct {
	ID        uint64       `json:"id" yaml:"id"`
	OwnerPID  uint64       `json:"owner_pid" yaml:"owner_pid"`
	Alpha     float64      `json:"alpha" yaml:"alpha"`
	OwnerName *string      `json:"owner_name,omitempty" yaml:"owner_name,omitempty"`
	Name      *string      `json:"name,omitempty" yaml:"name,omitempty"`
	Bounds    extract.Rect `json:"bounds" yaml:"bounds"`
}

// FromRecord copies r into a Window.
func FromRecord(r *snapshot.Record) Window {
	w := Window{
		ID:       r.ID,
		OwnerPID: r.OwnerPID,
		Alpha:    r.Alpha,
		Bounds:   r.Bounds,
	}
	if s, ok := r.Owner(); ok {
		w.OwnerName = &s
	}
	if s, ok := r.Title(); ok {
		w.Name = &s
	}
	return w
}

// FromBatch copies every record in b, dropping owners listed in exclude.
func FromBatch(b *snapshot.Batch, exclude []string) []Window {
	skip := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		skip[name] = struct{}{}
	}
	out := make([]Window, 0, len(b.Records))
	for _, r := range b.Records {
		w := FromRecord(r)
		if w.OwnerName != nil {
			if _, ok := skip[*w.OwnerName]; ok {
				continue
			}
		}
		out = append(out, w)
	}
	return out
}

// Options tune the text format.
type Options struct {
	// MaxWidth truncates owner and title lines; 0 disables truncation.
	MaxWidth int
}

// Write encodes windows to w in the given format.
func Write(w io.Writer, format Format, windows []Window, opts Options) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(windows); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(windows)
	default:
		for _, win := range windows {
			if err := writeBlock(w, win, opts); err != nil {
				return err
			}
		}
		return nil
	}
}

// writeBlock prints one window in enumeration order: opacity, owner,
// title, bounds, owner pid, id.
func writeBlock(w io.Writer, win Window, opts Options) error {
	var sb strings.Builder
	sb.WriteString("alpha:  " + num(win.Alpha) + "\n")
	if win.OwnerName != nil {
		sb.WriteString(truncate("owner:  "+*win.OwnerName, opts.MaxWidth) + "\n")
	}
	if win.Name != nil {
		sb.WriteString(truncate("title:  "+*win.Name, opts.MaxWidth) + "\n")
	}
	fmt.Fprintf(&sb, "bounds: w=%s h=%s x=%s y=%s\n",
		num(win.Bounds.W), num(win.Bounds.H), num(win.Bounds.X), num(win.Bounds.Y))
	fmt.Fprintf(&sb, "pid:    %d\n", win.OwnerPID)
	fmt.Fprintf(&sb, "id:     %d\n", win.ID)
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
