package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rhcos-prune/internal/core"
	"rhcos-prune/internal/types"
)

// Reconcile correlates the installer's boot image history with the
// release feed's build catalog, computes the action plan, tags images
// accordingly, and stages retired images in the ledger. The ledger is
// persisted once after staging; deletion itself happens in Drain.
func (s Service) Reconcile(ctx context.Context, req ReconcileRequest) (ReconcileResult, error) {
	if strings.TrimSpace(req.Release) == "" {
		return ReconcileResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("release is required")
	}
	ledger, err := s.Ledger.Load()
	if err != nil {
		return ReconcileResult{}, err
	}
	known := ledger.KnownBuilds()

	history, err := s.History.Resolve(ctx, req.Release)
	if err != nil {
		return ReconcileResult{}, err
	}
	protectedRaw := make(map[string][]types.ImageRef, len(history))
	for build, regions := range history {
		for region, entry := range regions {
			protectedRaw[build] = append(protectedRaw[build], types.ImageRef{Region: region, Image: entry.Image})
		}
	}

	candidatesRaw, err := s.collectCandidates(ctx, req, known)
	if err != nil {
		return ReconcileResult{}, err
	}

	inspector := TagInspector{Cloud: s.Cloud}
	protected, err := inspector.FilterUntagged(ctx, protectedRaw)
	if err != nil {
		return ReconcileResult{}, err
	}
	candidates, err := inspector.FilterUntagged(ctx, candidatesRaw)
	if err != nil {
		return ReconcileResult{}, err
	}

	plan := core.BuildActionPlan(protected, candidates, known)
	log.Info().
		Int("protect", len(plan.Protect)).
		Int("retire_builds", len(plan.RetireAndStage)).
		Msg("action plan computed")

	executor := Executor{DryRun: s.DryRun}
	for _, ref := range plan.Protect {
		if err := executor.Apply(ctx, tagAction(s.Cloud, ref, types.BootimageTagTrue)); err != nil {
			return ReconcileResult{}, err
		}
	}
	staged := 0
	for build, refs := range plan.RetireAndStage {
		for _, ref := range refs {
			if err := executor.Apply(ctx, tagAction(s.Cloud, ref, types.BootimageTagFalse)); err != nil {
				return ReconcileResult{}, err
			}
		}
		if !s.DryRun {
			ledger.Stage(build, refs)
		}
		staged += len(refs)
	}
	if !s.DryRun && len(plan.RetireAndStage) > 0 {
		if err := s.Ledger.Save(ledger); err != nil {
			return ReconcileResult{}, err
		}
	}
	return ReconcileResult{
		Plan:      plan,
		Protected: len(plan.Protect),
		Staged:    staged,
		DryRun:    s.DryRun,
	}, nil
}

// collectCandidates walks the release feed. Builds already present in
// the ledger are skipped before any metadata fetch, and builds older
// than the architecture's supported-since threshold never published
// cloud images, so they are skipped too.
func (s Service) collectCandidates(ctx context.Context, req ReconcileRequest, known map[string]struct{}) (map[string][]types.ImageRef, error) {
	builds, err := s.Feed.ListBuilds(ctx, req.Release)
	if err != nil {
		return nil, err
	}
	candidates := map[string][]types.ImageRef{}
	for _, build := range builds {
		if _, ok := known[build.ID]; ok {
			log.Debug().Str("build", build.ID).Msg("build already in ledger, skipping")
			continue
		}
		for _, arch := range build.Arches {
			if !core.SupportedBuild(build.ID, arch, req.Thresholds) {
				log.Debug().Str("build", build.ID).Str("arch", arch).Msg("build predates image support, skipping")
				continue
			}
			images, err := s.Feed.FetchBuildMeta(ctx, req.Release, build.ID, arch)
			if err != nil {
				return nil, err
			}
			for _, image := range images {
				candidates[build.ID] = append(candidates[build.ID], types.ImageRef{Region: image.Name, Image: image.ID})
			}
		}
	}
	return candidates, nil
}
