package app

import (
	"fmt"
	"sort"
	"strings"

	"rhcos-prune/internal/types"
)

// RenderPlan produces a deterministic, operator-readable listing of a
// computed action plan, one action per line.
func RenderPlan(plan types.ActionPlan) string {
	if plan.Empty() {
		return "no actions\n"
	}
	var b strings.Builder

	protect := append([]types.ImageRef(nil), plan.Protect...)
	sort.Slice(protect, func(i, j int) bool {
		if protect[i].Region != protect[j].Region {
			return protect[i].Region < protect[j].Region
		}
		return protect[i].Image < protect[j].Image
	})
	for _, ref := range protect {
		fmt.Fprintf(&b, "protect %s %s\n", ref.Region, ref.Image)
	}

	builds := make([]string, 0, len(plan.RetireAndStage))
	for build := range plan.RetireAndStage {
		builds = append(builds, build)
	}
	sort.Strings(builds)
	for _, build := range builds {
		for _, ref := range plan.RetireAndStage[build] {
			fmt.Fprintf(&b, "retire %s %s %s\n", build, ref.Region, ref.Image)
		}
	}
	return b.String()
}
