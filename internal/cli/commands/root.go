package commands

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/distkit/distkit/internal/cli/ui"
	"github.com/distkit/distkit/internal/hosting"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "distkit",
		Short: "Build distribution helper",
		Long: color.CyanString(`distkit - personal build distribution helper

Generates README, INSTALL, and LICENSE files from the project's metadata
declaration, and keeps a local dist directory in sync with the release
artifacts on the legacy hosting service.

Documents are only overwritten when they carry the generated-file marker,
so hand-edited files are never clobbered.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable informational logging")

	// Add subcommands
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewDocsCommand())
	rootCmd.AddCommand(NewLicenseCommand())
	rootCmd.AddCommand(NewSyncCommand())
	rootCmd.AddCommand(NewPushCommand())
	rootCmd.AddCommand(NewUnfeatureCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Print("distkit version: ")
			valueColor.Println(Version)

			titleColor.Print("Git commit: ")
			valueColor.Println(GitCommit)

			titleColor.Print("Build date: ")
			valueColor.Println(BuildDate)

			titleColor.Print("Go version: ")
			valueColor.Println(runtime.Version())
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		var upErr *hosting.UploadError
		if errors.As(err, &upErr) {
			// Diagnostic dump so the operator can see exactly what was
			// rejected before the batch halted.
			ui.WriteError(rootCmd.ErrOrStderr(), ui.ErrorOptions{
				Context: "upload failed",
				Problem: upErr.File,
				Details: []string{
					fmt.Sprintf("status:  %d", upErr.Status),
					fmt.Sprintf("reason:  %s", upErr.Reason),
					fmt.Sprintf("file:    %s", upErr.File),
					fmt.Sprintf("project: %s", upErr.Project),
				},
				Suggestions: []string{"Check your hosting credentials and the project name"},
			})
			return err
		}
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

// newLogger builds the command logger. Informational logging is on with
// --verbose; otherwise only warnings and errors surface.
func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}
