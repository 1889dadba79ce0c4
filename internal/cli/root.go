package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "RHCOS_PRUNE"

const (
	accessKeyIDEnv     = "ALIBABA_CLOUD_ACCESS_KEY_ID"
	accessKeySecretEnv = "ALIBABA_CLOUD_ACCESS_KEY_SECRET"
)

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		log.Error().Msg(errorMessage(err))
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	debug := false
	cmd := &cobra.Command{
		Use:     "rhcos-prune",
		Short:   "Tag live RHCOS boot images and retire stale ones",
		Version: version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			viper.SetEnvPrefix(envPrefix)
			viper.AutomaticEnv()
			setupLogging(viper.GetBool("debug"))
		},
	}
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	_ = viper.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))

	cmd.AddCommand(newPruneCommand())
	cmd.AddCommand(newDrainCommand())
	return cmd
}

func setupLogging(debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// credentials reads the cloud access key pair from the environment.
// Absence is a configuration error; no work is attempted without it.
func credentials() (string, string, error) {
	keyID := strings.TrimSpace(os.Getenv(accessKeyIDEnv))
	secret := strings.TrimSpace(os.Getenv(accessKeySecretEnv))
	if keyID == "" || secret == "" {
		return "", "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(accessKeyIDEnv + " and " + accessKeySecretEnv + " must be set")
	}
	return keyID, secret, nil
}

func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument:
		return 2
	case errbuilder.CodeFailedPrecondition:
		return 3
	case errbuilder.CodeInternal, errbuilder.CodeNotFound:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
