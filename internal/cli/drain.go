package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rhcos-prune/internal/app"
)

type drainOptions struct {
	DryRun   bool
	Filename string
}

func newDrainCommand() *cobra.Command {
	opts := drainOptions{}
	cmd := &cobra.Command{
		Use:   "drain",
		Short: "Delete images already staged in the ledger, without reconciling",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDrain(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Log the planned deletions without issuing mutating calls")
	cmd.Flags().StringVar(&opts.Filename, "filename", defaultLedgerFile, "Path of the deletion ledger file")
	_ = viper.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("filename", cmd.Flags().Lookup("filename"))
	return cmd
}

func runDrain(ctx context.Context, cmd *cobra.Command, opts drainOptions) error {
	keyID, secret, err := credentials()
	if err != nil {
		return err
	}
	service := app.NewService(app.Options{
		AccessKeyID:     keyID,
		AccessKeySecret: secret,
		LedgerPath:      resolveString(cmd, opts.Filename, "filename", "filename"),
		DryRun:          resolveBool(cmd, opts.DryRun, "dry_run", "dry-run"),
	})
	result, err := service.Drain(ctx)
	if err != nil {
		return err
	}
	if result.DryRun {
		fmt.Printf("dry-run: delete=%d skip=%d\n", result.Deleted, result.Skipped)
		return nil
	}
	fmt.Printf("deleted=%d skipped=%d\n", result.Deleted, result.Skipped)
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
