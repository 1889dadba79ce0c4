package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rhcos-prune/internal/adapters"
	"rhcos-prune/internal/app"
)

const (
	defaultFeedEndpoint  = "https://rhcos-redirector.apps.art.xq1c.p1.openshiftapps.com/art/storage/releases"
	defaultInstallerRepo = "https://github.com/openshift/installer"
	defaultLedgerFile    = "deleted_images.json"
)

type pruneOptions struct {
	DryRun         bool
	Filename       string
	Thresholds     string
	FeedEndpoint   string
	FeedTimeoutSec int
	InstallerRepo  string
}

func newPruneCommand() *cobra.Command {
	opts := pruneOptions{}
	cmd := &cobra.Command{
		Use:   "prune <release>",
		Short: "Reconcile a release's images, tag them, and drain staged deletions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Log the planned actions without issuing mutating calls")
	cmd.Flags().StringVar(&opts.Filename, "filename", defaultLedgerFile, "Path of the deletion ledger file")
	cmd.Flags().StringVar(&opts.Thresholds, "thresholds", "", "YAML file with per-architecture supported-since build ordinals")
	cmd.Flags().StringVar(&opts.FeedEndpoint, "feed-endpoint", defaultFeedEndpoint, "Release feed base URL")
	cmd.Flags().IntVar(&opts.FeedTimeoutSec, "feed-timeout", 60, "Release feed HTTP timeout in seconds")
	cmd.Flags().StringVar(&opts.InstallerRepo, "installer-repo", defaultInstallerRepo, "Installer git repository URL")

	_ = viper.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("filename", cmd.Flags().Lookup("filename"))
	_ = viper.BindPFlag("thresholds", cmd.Flags().Lookup("thresholds"))
	_ = viper.BindPFlag("feed_endpoint", cmd.Flags().Lookup("feed-endpoint"))
	_ = viper.BindPFlag("feed_timeout_sec", cmd.Flags().Lookup("feed-timeout"))
	_ = viper.BindPFlag("installer_repo", cmd.Flags().Lookup("installer-repo"))

	return cmd
}

func runPrune(ctx context.Context, cmd *cobra.Command, release string, opts pruneOptions) error {
	keyID, secret, err := credentials()
	if err != nil {
		return err
	}
	thresholds, err := adapters.LoadSupportThresholds(resolveString(cmd, opts.Thresholds, "thresholds", "thresholds"))
	if err != nil {
		return err
	}
	service := app.NewService(app.Options{
		AccessKeyID:     keyID,
		AccessKeySecret: secret,
		FeedEndpoint:    resolveString(cmd, opts.FeedEndpoint, "feed_endpoint", "feed-endpoint"),
		FeedTimeoutSec:  resolveInt(cmd, opts.FeedTimeoutSec, "feed_timeout_sec", "feed-timeout"),
		InstallerRepo:   resolveString(cmd, opts.InstallerRepo, "installer_repo", "installer-repo"),
		LedgerPath:      resolveString(cmd, opts.Filename, "filename", "filename"),
		DryRun:          resolveBool(cmd, opts.DryRun, "dry_run", "dry-run"),
	})
	result, err := service.Reconcile(ctx, app.ReconcileRequest{
		Release:    release,
		Thresholds: thresholds,
	})
	if err != nil {
		return err
	}
	if result.DryRun {
		fmt.Print(app.RenderPlan(result.Plan))
		fmt.Printf("dry-run: protect=%d stage=%d\n", result.Protected, result.Staged)
	} else {
		fmt.Printf("protected=%d staged=%d\n", result.Protected, result.Staged)
	}
	drained, err := service.Drain(ctx)
	if err != nil {
		return err
	}
	if drained.DryRun {
		fmt.Printf("dry-run: delete=%d skip=%d\n", drained.Deleted, drained.Skipped)
		return nil
	}
	fmt.Printf("deleted=%d skipped=%d\n", drained.Deleted, drained.Skipped)
	return nil
}
