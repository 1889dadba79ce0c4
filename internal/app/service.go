package app

import (
	"rhcos-prune/internal/adapters"
	"rhcos-prune/internal/ports"
)

// Service wires the collaborators the pruner depends on. DryRun is
// threaded explicitly into the executor rather than read from global
// state so the mutation path stays testable in isolation.
type Service struct {
	Cloud   ports.CloudImagePort
	Feed    ports.ReleaseFeedPort
	History ports.InstallerHistoryPort
	Ledger  ports.LedgerStorePort
	DryRun  bool
}

// Options configures the production adapter set.
type Options struct {
	AccessKeyID     string
	AccessKeySecret string
	FeedEndpoint    string
	FeedTimeoutSec  int
	InstallerRepo   string
	LedgerPath      string
	DryRun          bool
}

func NewService(opts Options) Service {
	return Service{
		Cloud:   adapters.NewCloudAliyunAdapter(opts.AccessKeyID, opts.AccessKeySecret),
		Feed:    adapters.NewReleaseFeedAdapter(opts.FeedEndpoint, opts.FeedTimeoutSec),
		History: adapters.NewInstallerHistoryAdapter(opts.InstallerRepo),
		Ledger:  adapters.NewLedgerFileAdapter(opts.LedgerPath),
		DryRun:  opts.DryRun,
	}
}
