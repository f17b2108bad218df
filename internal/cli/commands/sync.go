package commands

import (
	"github.com/spf13/cobra"

	"github.com/distkit/distkit/internal/cli/config"
	"github.com/distkit/distkit/internal/cli/ui"
	"github.com/distkit/distkit/internal/hosting"
	"github.com/distkit/distkit/internal/reconcile"
)

var (
	syncLabel  string
	syncExcept []string
)

// NewSyncCommand creates the sync command
func NewSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Download release artifacts into the dist directory",
		Long: `Reconcile the local dist directory against the remote artifact listing.

Missing files are downloaded; files whose SHA1 disagrees with (or is absent
from) the remote record are re-downloaded. Local files are never deleted.
A listing that cannot be fetched is treated as empty.`,
		RunE: runSync,
	}

	cmd.Flags().StringVar(&syncLabel, "label", "", "Only reconcile artifacts carrying this label")
	cmd.Flags().StringSliceVar(&syncExcept, "except", nil, "Filenames to skip")

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	proj, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger()
	defer logger.Sync()

	client := hosting.NewClient(proj.Hosting.Project, proj.Hosting.BaseURL, logger)
	syncer := &reconcile.Syncer{
		Client:  client,
		DistDir: proj.DistDir,
		Logger:  logger,
	}

	out := cmd.OutOrStdout()
	var spinner *ui.Spinner
	if !verbose {
		spinner = ui.NewSpinner(cmd.ErrOrStderr(), "Reconciling "+proj.DistDir+"...")
		spinner.Start()
	}

	err = syncer.Sync(syncLabel, syncExcept)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	ui.Success(out, "%s is in sync with project %s", proj.DistDir, proj.Hosting.Project)
	return nil
}
