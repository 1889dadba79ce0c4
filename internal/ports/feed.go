package ports

import (
	"context"

	"rhcos-prune/internal/types"
)

// ReleaseFeedPort exposes the build catalog for a release stream.
// FetchBuildMeta returns nil without error when the build published no
// cloud images for the architecture.
type ReleaseFeedPort interface {
	ListBuilds(ctx context.Context, release string) ([]types.BuildListing, error)
	FetchBuildMeta(ctx context.Context, release string, buildID string, arch string) ([]types.RegionalImage, error)
}
