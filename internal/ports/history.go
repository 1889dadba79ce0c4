package ports

import (
	"context"

	"rhcos-prune/internal/types"
)

// InstallerHistoryPort resolves every build the installer has ever
// referenced on a release branch, keyed by build id then region.
type InstallerHistoryPort interface {
	Resolve(ctx context.Context, release string) (map[string]map[string]types.RegionImage, error)
}
