package app

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"rhcos-prune/internal/types"
)

// Drain drives every pending ledger entry through the deletion state
// machine: re-check the protective tag, revoke public visibility if
// needed, delete, mark deleted. The ledger is persisted after each
// build's batch so a mid-run crash loses at most one build's progress.
func (s Service) Drain(ctx context.Context) (DrainResult, error) {
	ledger, err := s.Ledger.Load()
	if err != nil {
		return DrainResult{}, err
	}
	inspector := TagInspector{Cloud: s.Cloud}
	executor := Executor{DryRun: s.DryRun}

	builds := make([]string, 0, len(ledger))
	for build := range ledger {
		builds = append(builds, build)
	}
	sort.Strings(builds)

	result := DrainResult{DryRun: s.DryRun}
	for _, build := range builds {
		entries := ledger[build]
		changed := false
		for i := range entries {
			if entries[i].Deleted {
				continue
			}
			ref := types.ImageRef{Region: entries[i].Region, Image: entries[i].Image}
			status, err := inspector.Classify(ctx, ref.Region, ref.Image)
			if err != nil {
				return result, err
			}
			// Safety guard: the image may have been promoted to a
			// protected boot image since it was staged.
			if status.Tags.IsProtected() {
				log.Warn().
					Str("build", build).
					Str("region", ref.Region).
					Str("image", ref.Image).
					Msg("image carries protective tag, skipping deletion")
				result.Skipped++
				continue
			}
			if status.IsPublic {
				if err := executor.Apply(ctx, visibilityAction(s.Cloud, ref, false)); err != nil {
					return result, err
				}
			}
			if err := executor.Apply(ctx, deleteAction(s.Cloud, ref)); err != nil {
				return result, err
			}
			if !s.DryRun {
				ledger.MarkDeleted(build, ref.Region, ref.Image)
				changed = true
			}
			result.Deleted++
		}
		if changed {
			if err := s.Ledger.Save(ledger); err != nil {
				return result, err
			}
		}
	}
	return result, nil
}
