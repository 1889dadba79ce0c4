package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"rhcos-prune/internal/ports"
	"rhcos-prune/internal/types"
)

// TagInspector reads an image's current tag set and visibility. Pure
// query; every mutation decision downstream starts from its answers.
type TagInspector struct {
	Cloud ports.CloudImagePort
}

func (i TagInspector) Classify(ctx context.Context, region string, imageID string) (types.ImageStatus, error) {
	return i.Cloud.DescribeImage(ctx, region, imageID)
}

// FilterUntagged returns the subset of images that do not yet carry a
// bootimage classification tag. Builds whose images are all classified
// drop out of the result entirely.
func (i TagInspector) FilterUntagged(ctx context.Context, images map[string][]types.ImageRef) (map[string][]types.ImageRef, error) {
	untagged := map[string][]types.ImageRef{}
	for build, refs := range images {
		for _, ref := range refs {
			status, err := i.Classify(ctx, ref.Region, ref.Image)
			if err != nil {
				return nil, err
			}
			if status.Tags.HasClassification() {
				log.Debug().
					Str("build", build).
					Str("region", ref.Region).
					Str("image", ref.Image).
					Msg("image already classified, skipping")
				continue
			}
			untagged[build] = append(untagged[build], ref)
		}
	}
	return untagged, nil
}
