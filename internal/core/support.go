package core

import (
	"strconv"
	"strings"

	"rhcos-prune/internal/types"
)

// BuildOrdinal reduces a build id to its embedded numeric ordinal by
// stripping every non-digit character. The second return is false when
// the id contains no digits or the digits do not fit an int64.
func BuildOrdinal(buildID string) (int64, bool) {
	var digits strings.Builder
	for _, r := range buildID {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	ordinal, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return ordinal, true
}

// SupportedBuild reports whether the build is recent enough to have
// published cloud images for the architecture. Architectures without a
// configured threshold are always supported.
func SupportedBuild(buildID string, arch string, thresholds types.SupportThresholds) bool {
	threshold, ok := thresholds.Arches[arch]
	if !ok {
		return true
	}
	ordinal, ok := BuildOrdinal(buildID)
	if !ok {
		return false
	}
	return ordinal >= threshold
}
