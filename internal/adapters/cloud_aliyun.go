package adapters

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	ecs "github.com/alibabacloud-go/ecs-20140526/v4/client"
	"github.com/alibabacloud-go/tea/tea"

	"rhcos-prune/internal/ports"
	"rhcos-prune/internal/types"
)

// CloudAliyunAdapter talks to the Alibaba Cloud ECS image API. Clients
// are created lazily per region; tagging requests carry the region id
// explicitly because the client-level region does not propagate to
// every call.
type CloudAliyunAdapter struct {
	AccessKeyID     string
	AccessKeySecret string
	clients         map[string]*ecs.Client
}

func NewCloudAliyunAdapter(accessKeyID string, accessKeySecret string) CloudAliyunAdapter {
	return CloudAliyunAdapter{
		AccessKeyID:     accessKeyID,
		AccessKeySecret: accessKeySecret,
		clients:         map[string]*ecs.Client{},
	}
}

func (a CloudAliyunAdapter) client(region string) (*ecs.Client, error) {
	if client, ok := a.clients[region]; ok {
		return client, nil
	}
	config := &openapi.Config{
		AccessKeyId:     tea.String(a.AccessKeyID),
		AccessKeySecret: tea.String(a.AccessKeySecret),
		RegionId:        tea.String(region),
		Endpoint:        tea.String(fmt.Sprintf("ecs.%s.aliyuncs.com", region)),
	}
	client, err := ecs.NewClient(config)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to create ecs client for region %s", region)).
			WithCause(err)
	}
	a.clients[region] = client
	return client, nil
}

func (a CloudAliyunAdapter) DescribeImage(ctx context.Context, region string, imageID string) (types.ImageStatus, error) {
	if err := ctx.Err(); err != nil {
		return types.ImageStatus{}, err
	}
	client, err := a.client(region)
	if err != nil {
		return types.ImageStatus{}, err
	}
	request := &ecs.DescribeImagesRequest{
		RegionId: tea.String(region),
		ImageId:  tea.String(imageID),
	}
	response, err := client.DescribeImages(request)
	if err != nil {
		return types.ImageStatus{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("describe-images failed for %s/%s", region, imageID)).
			WithCause(err)
	}
	if response.Body == nil || response.Body.Images == nil {
		return types.ImageStatus{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("describe-images returned no body for %s/%s", region, imageID))
	}
	images := response.Body.Images.Image
	// Image ids are unique per region; anything but exactly one result
	// is a data inconsistency the run must not paper over.
	if len(images) != 1 {
		return types.ImageStatus{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("describe-images returned %d results for %s/%s", len(images), region, imageID))
	}
	image := images[0]
	tags := types.TagSet{}
	if image.Tags != nil {
		for _, tag := range image.Tags.Tag {
			if tag == nil || tag.TagKey == nil {
				continue
			}
			tags[tea.StringValue(tag.TagKey)] = tea.StringValue(tag.TagValue)
		}
	}
	return types.ImageStatus{
		Tags:     tags,
		IsPublic: tea.BoolValue(image.IsPublic),
	}, nil
}

func (a CloudAliyunAdapter) TagResources(ctx context.Context, region string, imageID string, tags types.TagSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	client, err := a.client(region)
	if err != nil {
		return err
	}
	requestTags := make([]*ecs.TagResourcesRequestTag, 0, len(tags))
	for key, value := range tags {
		requestTags = append(requestTags, &ecs.TagResourcesRequestTag{
			Key:   tea.String(key),
			Value: tea.String(value),
		})
	}
	request := &ecs.TagResourcesRequest{
		RegionId:     tea.String(region),
		ResourceType: tea.String("image"),
		ResourceId:   []*string{tea.String(imageID)},
		Tag:          requestTags,
	}
	if _, err := client.TagResources(request); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("tag-resources failed for %s/%s", region, imageID)).
			WithCause(err)
	}
	return nil
}

func (a CloudAliyunAdapter) SetVisibility(ctx context.Context, region string, imageID string, public bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	client, err := a.client(region)
	if err != nil {
		return err
	}
	request := &ecs.ModifyImageSharePermissionRequest{
		RegionId: tea.String(region),
		ImageId:  tea.String(imageID),
		IsPublic: tea.Bool(public),
	}
	if _, err := client.ModifyImageSharePermission(request); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("modify-image-share-permission failed for %s/%s", region, imageID)).
			WithCause(err)
	}
	return nil
}

func (a CloudAliyunAdapter) DeleteImage(ctx context.Context, region string, imageID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	client, err := a.client(region)
	if err != nil {
		return err
	}
	request := &ecs.DeleteImageRequest{
		RegionId: tea.String(region),
		ImageId:  tea.String(imageID),
	}
	if _, err := client.DeleteImage(request); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("delete-image failed for %s/%s", region, imageID)).
			WithCause(err)
	}
	return nil
}

var _ ports.CloudImagePort = CloudAliyunAdapter{}
