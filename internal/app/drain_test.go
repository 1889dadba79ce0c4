package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rhcos-prune/internal/types"
)

func TestDrainDeletesPendingEntries(t *testing.T) {
	cloud := newFakeCloud()
	store := &fakeLedgerStore{ledger: types.Ledger{
		"410.2": {{Region: "us-east-1", Image: "img-B"}},
		"410.3": {{Region: "eu-central-1", Image: "img-C"}},
	}}
	service := newTestService(cloud, &fakeFeed{}, &fakeHistory{}, store, false)

	result, err := service.Drain(t.Context())
	require.NoError(t, err)
	require.Equal(t, 2, result.Deleted)
	require.Zero(t, result.Skipped)
	require.ElementsMatch(t, []string{"us-east-1/img-B", "eu-central-1/img-C"}, cloud.delCalls)
	require.True(t, store.ledger["410.2"][0].Deleted)
	require.True(t, store.ledger["410.3"][0].Deleted)
	// One save per build batch, not one per run.
	require.Equal(t, 2, store.saves)
}

func TestDrainSkipsProtectedImages(t *testing.T) {
	cloud := newFakeCloud()
	cloud.setStatus("us-east-1", "img-B", types.ImageStatus{
		Tags: types.TagSet{types.BootimageTagKey: types.BootimageTagTrue},
	})
	store := &fakeLedgerStore{ledger: types.Ledger{
		"410.2": {{Region: "us-east-1", Image: "img-B"}},
	}}
	service := newTestService(cloud, &fakeFeed{}, &fakeHistory{}, store, false)

	result, err := service.Drain(t.Context())
	require.NoError(t, err)
	require.Zero(t, result.Deleted)
	require.Equal(t, 1, result.Skipped)
	require.Empty(t, cloud.delCalls)
	require.False(t, store.ledger["410.2"][0].Deleted)
	require.Zero(t, store.saves)

	// The guard holds across repeated runs until the tag changes.
	again, err := service.Drain(t.Context())
	require.NoError(t, err)
	require.Equal(t, 1, again.Skipped)
	require.Empty(t, cloud.delCalls)
}

func TestDrainRevokesPublicVisibilityBeforeDelete(t *testing.T) {
	cloud := newFakeCloud()
	cloud.setStatus("us-east-1", "img-B", types.ImageStatus{Tags: types.TagSet{}, IsPublic: true})
	store := &fakeLedgerStore{ledger: types.Ledger{
		"410.2": {{Region: "us-east-1", Image: "img-B"}},
	}}
	service := newTestService(cloud, &fakeFeed{}, &fakeHistory{}, store, false)

	_, err := service.Drain(t.Context())
	require.NoError(t, err)
	require.Equal(t, []string{"us-east-1/img-B public=false"}, cloud.visCalls)
	require.Equal(t, []string{"us-east-1/img-B"}, cloud.delCalls)
}

func TestDrainPrivateImageNeedsNoVisibilityChange(t *testing.T) {
	cloud := newFakeCloud()
	store := &fakeLedgerStore{ledger: types.Ledger{
		"410.2": {{Region: "us-east-1", Image: "img-B"}},
	}}
	service := newTestService(cloud, &fakeFeed{}, &fakeHistory{}, store, false)

	_, err := service.Drain(t.Context())
	require.NoError(t, err)
	require.Empty(t, cloud.visCalls)
	require.Equal(t, []string{"us-east-1/img-B"}, cloud.delCalls)
}

func TestDrainIgnoresDeletedEntries(t *testing.T) {
	cloud := newFakeCloud()
	store := &fakeLedgerStore{ledger: types.Ledger{
		"410.2": {{Region: "us-east-1", Image: "img-B", Deleted: true}},
	}}
	service := newTestService(cloud, &fakeFeed{}, &fakeHistory{}, store, false)

	result, err := service.Drain(t.Context())
	require.NoError(t, err)
	require.Zero(t, result.Deleted)
	require.Zero(t, cloud.mutationCount())
	require.Zero(t, store.saves)
}

func TestDrainDryRunIssuesNoMutations(t *testing.T) {
	cloud := newFakeCloud()
	cloud.setStatus("us-east-1", "img-B", types.ImageStatus{Tags: types.TagSet{}, IsPublic: true})
	store := &fakeLedgerStore{ledger: types.Ledger{
		"410.2": {{Region: "us-east-1", Image: "img-B"}},
	}}
	service := newTestService(cloud, &fakeFeed{}, &fakeHistory{}, store, true)

	result, err := service.Drain(t.Context())
	require.NoError(t, err)
	require.True(t, result.DryRun)
	require.Equal(t, 1, result.Deleted)
	require.Zero(t, cloud.mutationCount())
	require.Zero(t, store.saves)
	require.False(t, store.ledger["410.2"][0].Deleted)
}

func TestDrainStopsOnDescribeFailure(t *testing.T) {
	cloud := newFakeCloud()
	cloud.failCalls["describe/us-east-1/img-B"] = errFake
	store := &fakeLedgerStore{ledger: types.Ledger{
		"410.2": {{Region: "us-east-1", Image: "img-B"}},
	}}
	service := newTestService(cloud, &fakeFeed{}, &fakeHistory{}, store, false)

	_, err := service.Drain(t.Context())
	require.Error(t, err)
	require.Empty(t, cloud.delCalls)
}
