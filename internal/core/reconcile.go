package core

import (
	"rhcos-prune/internal/types"
)

// BuildActionPlan classifies every candidate build into one of three
// outcomes: protect (the build is still referenced by the installer),
// skip (the build is already in the ledger from a prior run), or
// retire-and-stage. Both inputs must already be filtered down to
// images without a bootimage classification tag.
//
// The engine performs no I/O and cannot fail; image order within a
// build is preserved from the input.
func BuildActionPlan(protected map[string][]types.ImageRef, candidates map[string][]types.ImageRef, known map[string]struct{}) types.ActionPlan {
	plan := types.ActionPlan{RetireAndStage: map[string][]types.ImageRef{}}
	for build, refs := range candidates {
		if len(refs) == 0 {
			continue
		}
		if _, ok := protected[build]; ok {
			plan.Protect = append(plan.Protect, refs...)
			continue
		}
		if _, ok := known[build]; ok {
			// Already decided in a prior run. Re-deciding could re-tag
			// or re-stage an image whose deletion is in progress.
			continue
		}
		plan.RetireAndStage[build] = append([]types.ImageRef(nil), refs...)
	}
	return plan
}
