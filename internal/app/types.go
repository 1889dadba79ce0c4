package app

import (
	"rhcos-prune/internal/types"
)

type ReconcileRequest struct {
	Release    string
	Thresholds types.SupportThresholds
}

type ReconcileResult struct {
	Plan      types.ActionPlan
	Protected int
	Staged    int
	DryRun    bool
}

type DrainResult struct {
	Deleted int
	Skipped int
	DryRun  bool
}
