package types

// SupportThresholds holds, per architecture, the minimum build ordinal
// for which cloud images were published. Builds below the threshold
// predate image support and are skipped before any metadata fetch.
type SupportThresholds struct {
	Arches map[string]int64 `yaml:"arches"`
}
