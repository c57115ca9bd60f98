package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bazel-io/release-updates/internal/config"
	"github.com/bazel-io/release-updates/internal/service/release"
	"github.com/bazel-io/release-updates/internal/version"
)

// options collects the flag values of the root command.
//
//nolint:gochecknoglobals // Bound to cobra flags.
var options release.Options

// rootCmd updates the manifest for a java_tools release.
//
//nolint:gochecknoglobals // Required by Cobra CLI framework architecture.
var rootCmd = &cobra.Command{
	Use:   "release-updates --artifacts <builder output> --token <token>",
	Short: "Update repositories.bzl for a new java_tools release",
	Long: "Rewrites the sha256 and urls of every java_tools block in the manifest from the " +
		"release builder output, then commits the change to a release branch and pushes it.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		return release.Run(ctx, &options)
	},
}

// Execute runs the CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// bindFlags registers the release flags on fs.
func bindFlags(fs *pflag.FlagSet, opts *release.Options) {
	fs.StringVar(&opts.Artifacts, "artifacts", "", "release builder output, one \"<path> <sha256>\" line per artifact")
	fs.StringVar(&opts.Token, "token", "", "code host token used to push the release branch")
	fs.StringVarP(&opts.ConfigPath, "config", "c", "", "path to settings file (default "+config.DefaultConfigFilename+" if present)")
	fs.StringVar(&opts.ManifestPath, "manifest", "", "manifest to update (default "+config.DefaultManifestPath+")")
	fs.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.BoolVar(&opts.OpenPullRequest, "open-pr", false, "open a pull request for the release branch")
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	bindFlags(rootCmd.Flags(), &options)

	_ = rootCmd.MarkFlagRequired("artifacts")
	_ = rootCmd.MarkFlagRequired("token")
}
