// Package listing runs one full enumeration: acquire, materialize, copy
// out and release.
package listing

import (
	"context"
	"log/slog"

	"github.com/1broseidon/winsnap/internal/buffer"
	"github.com/1broseidon/winsnap/internal/native"
	"github.com/1broseidon/winsnap/internal/render"
	"github.com/1broseidon/winsnap/internal/snapshot"
)

// Options configure Collect.
type Options struct {
	Policy        snapshot.Policy
	ExcludeOwners []string
	Logger        *slog.Logger
}

// Result is a detached listing; nothing in it refers to native memory.
type Result struct {
	SnapshotID string
	Windows    []render.Window
	// Skipped describes records dropped under the skip policy.
	Skipped []string
}

// Collect enumerates reg once and returns copies of every window. All
// native handles and record buffers are released before it returns.
func Collect(reg native.Registry, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	alloc := buffer.NewCountingAllocator(nil)

	res := &Result{}
	err := snapshot.With(reg, snapshot.Options{
		Allocator: alloc,
		Policy:    opts.Policy,
		Logger:    logger,
	}, func(s *snapshot.Snapshot) error {
		res.SnapshotID = s.ID()
		batch, err := s.MaterializeAll()
		if err != nil {
			return err
		}
		defer batch.Release()

		res.Windows = render.FromBatch(batch, opts.ExcludeOwners)
		for _, skipped := range batch.Skipped {
			res.Skipped = append(res.Skipped, skipped.Error())
		}
		return nil
	})

	if logger.Enabled(context.Background(), slog.LevelDebug) {
		st := alloc.Stats()
		logger.Debug("string buffers",
			"allocs", st.Allocs,
			"frees", st.Frees,
			"outstanding", st.Outstanding,
			"invalid_frees", st.InvalidFrees,
		)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
