package app

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rhcos-prune/internal/ports"
	"rhcos-prune/internal/types"
)

// Action is one mutating cloud call modeled as a value: its name,
// target, and parameters, plus the call itself. The executor chooses
// whether to simulate or apply it, so no call site branches on dry-run
// inline.
type Action struct {
	Name   string
	Region string
	Image  string
	Params map[string]string
	run    func(ctx context.Context) error
}

func NewAction(name string, region string, image string, params map[string]string, run func(ctx context.Context) error) Action {
	return Action{Name: name, Region: region, Image: image, Params: params, run: run}
}

// Executor applies actions fail-fast: a provider error is terminal and
// aborts the run. Partially-applied mutations are acceptable because
// tagging and deletion are resumable on the next run via the ledger.
type Executor struct {
	DryRun bool
}

func (e Executor) Apply(ctx context.Context, action Action) error {
	assert.NotEmpty(ctx, action.Name, "action name must be set")
	event := log.Info().
		Str("action", action.Name).
		Str("region", action.Region).
		Str("image", action.Image)
	if len(action.Params) > 0 {
		event = event.Interface("params", action.Params)
	}
	if e.DryRun {
		event.Msg("dry-run: skipping mutating call")
		return nil
	}
	event.Msg("applying mutating call")
	if err := action.run(ctx); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("%s failed for %s/%s params=%v", action.Name, action.Region, action.Image, action.Params)).
			WithCause(err)
	}
	return nil
}

func tagAction(cloud ports.CloudImagePort, ref types.ImageRef, value string) Action {
	tags := types.TagSet{types.BootimageTagKey: value}
	return NewAction("tag-image", ref.Region, ref.Image,
		map[string]string{types.BootimageTagKey: value},
		func(ctx context.Context) error {
			return cloud.TagResources(ctx, ref.Region, ref.Image, tags)
		})
}

func visibilityAction(cloud ports.CloudImagePort, ref types.ImageRef, public bool) Action {
	return NewAction("set-visibility", ref.Region, ref.Image,
		map[string]string{"public": fmt.Sprintf("%t", public)},
		func(ctx context.Context) error {
			return cloud.SetVisibility(ctx, ref.Region, ref.Image, public)
		})
}

func deleteAction(cloud ports.CloudImagePort, ref types.ImageRef) Action {
	return NewAction("delete-image", ref.Region, ref.Image, nil,
		func(ctx context.Context) error {
			return cloud.DeleteImage(ctx, ref.Region, ref.Image)
		})
}
