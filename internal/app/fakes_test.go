package app

import (
	"context"
	"errors"
	"fmt"

	"rhcos-prune/internal/types"
)

var errFake = errors.New("provider unavailable")

// fakeCloud is an in-memory CloudImagePort that records every mutating
// call and reflects applied tags back through DescribeImage, the way
// the real provider does.
type fakeCloud struct {
	statuses  map[types.ImageRef]types.ImageStatus
	tagCalls  []string
	visCalls  []string
	delCalls  []string
	failCalls map[string]error
}

func newFakeCloud() *fakeCloud {
	return &fakeCloud{
		statuses:  map[types.ImageRef]types.ImageStatus{},
		failCalls: map[string]error{},
	}
}

func (f *fakeCloud) setStatus(region string, image string, status types.ImageStatus) {
	f.statuses[types.ImageRef{Region: region, Image: image}] = status
}

func (f *fakeCloud) mutationCount() int {
	return len(f.tagCalls) + len(f.visCalls) + len(f.delCalls)
}

func (f *fakeCloud) DescribeImage(_ context.Context, region string, imageID string) (types.ImageStatus, error) {
	if err := f.failCalls["describe/"+region+"/"+imageID]; err != nil {
		return types.ImageStatus{}, err
	}
	status, ok := f.statuses[types.ImageRef{Region: region, Image: imageID}]
	if !ok {
		return types.ImageStatus{Tags: types.TagSet{}}, nil
	}
	if status.Tags == nil {
		status.Tags = types.TagSet{}
	}
	return status, nil
}

func (f *fakeCloud) TagResources(_ context.Context, region string, imageID string, tags types.TagSet) error {
	if err := f.failCalls["tag/"+region+"/"+imageID]; err != nil {
		return err
	}
	ref := types.ImageRef{Region: region, Image: imageID}
	status := f.statuses[ref]
	if status.Tags == nil {
		status.Tags = types.TagSet{}
	}
	for key, value := range tags {
		status.Tags[key] = value
		f.tagCalls = append(f.tagCalls, fmt.Sprintf("%s/%s %s=%s", region, imageID, key, value))
	}
	f.statuses[ref] = status
	return nil
}

func (f *fakeCloud) SetVisibility(_ context.Context, region string, imageID string, public bool) error {
	if err := f.failCalls["visibility/"+region+"/"+imageID]; err != nil {
		return err
	}
	ref := types.ImageRef{Region: region, Image: imageID}
	status := f.statuses[ref]
	status.IsPublic = public
	f.statuses[ref] = status
	f.visCalls = append(f.visCalls, fmt.Sprintf("%s/%s public=%t", region, imageID, public))
	return nil
}

func (f *fakeCloud) DeleteImage(_ context.Context, region string, imageID string) error {
	if err := f.failCalls["delete/"+region+"/"+imageID]; err != nil {
		return err
	}
	f.delCalls = append(f.delCalls, region+"/"+imageID)
	return nil
}

type fakeFeed struct {
	builds []types.BuildListing
	meta   map[string][]types.RegionalImage
}

func (f *fakeFeed) ListBuilds(_ context.Context, _ string) ([]types.BuildListing, error) {
	return f.builds, nil
}

func (f *fakeFeed) FetchBuildMeta(_ context.Context, _ string, buildID string, arch string) ([]types.RegionalImage, error) {
	return f.meta[buildID+"/"+arch], nil
}

type fakeHistory struct {
	images map[string]map[string]types.RegionImage
}

func (f *fakeHistory) Resolve(_ context.Context, _ string) (map[string]map[string]types.RegionImage, error) {
	return f.images, nil
}

type fakeLedgerStore struct {
	ledger types.Ledger
	saves  int
}

func (s *fakeLedgerStore) Load() (types.Ledger, error) {
	if s.ledger == nil {
		s.ledger = types.Ledger{}
	}
	return s.ledger, nil
}

func (s *fakeLedgerStore) Save(ledger types.Ledger) error {
	s.ledger = ledger
	s.saves++
	return nil
}
