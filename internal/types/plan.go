package types

// ActionPlan is the outcome of one reconciliation pass. Protect lists
// images that must be tagged bootimage=true; RetireAndStage groups
// images to tag bootimage=false and stage for deletion, per build.
// The plan is computed once per run and never persisted.
type ActionPlan struct {
	Protect        []ImageRef
	RetireAndStage map[string][]ImageRef
}

// Empty reports whether the plan contains no actions.
func (p ActionPlan) Empty() bool {
	return len(p.Protect) == 0 && len(p.RetireAndStage) == 0
}
