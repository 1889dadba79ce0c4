package ports

import (
	"context"

	"rhcos-prune/internal/types"
)

// CloudImagePort is the provider surface the pruner needs: one read
// call and the three mutating primitives.
type CloudImagePort interface {
	DescribeImage(ctx context.Context, region string, imageID string) (types.ImageStatus, error)
	TagResources(ctx context.Context, region string, imageID string, tags types.TagSet) error
	SetVisibility(ctx context.Context, region string, imageID string, public bool) error
	DeleteImage(ctx context.Context, region string, imageID string) error
}
