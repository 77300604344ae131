package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winsnap/internal/listing"
	"github.com/1broseidon/winsnap/internal/platform"
	"github.com/1broseidon/winsnap/internal/snapshot"
)

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	opts := platform.Options{IncludeOffscreen: s.config.IncludeOffscreen}
	if args.IncludeOffscreen != nil {
		opts.IncludeOffscreen = *args.IncludeOffscreen
	}
	policy := s.config.Policy()
	if args.SkipInvalid != nil {
		policy = snapshot.PolicyFailFast
		if *args.SkipInvalid {
			policy = snapshot.PolicySkip
		}
	}

	res, err := listing.Collect(s.registry(opts), listing.Options{
		Policy:        policy,
		ExcludeOwners: s.config.ExcludeOwners,
		Logger:        s.logger,
	})
	if err != nil {
		s.logger.Warn("list_windows failed", "error", err)
		return nil, ListWindowsOutput{}, fmt.Errorf("list windows: %w", err)
	}

	out := ListWindowsOutput{
		SnapshotID: res.SnapshotID,
		Windows:    res.Windows,
		Skipped:    res.Skipped,
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: fmt.Sprintf("%d windows (%d skipped)", len(out.Windows), len(out.Skipped))},
		},
	}, out, nil
}
