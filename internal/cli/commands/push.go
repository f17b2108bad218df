package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/distkit/distkit/internal/cli/config"
	"github.com/distkit/distkit/internal/cli/ui"
	"github.com/distkit/distkit/internal/hosting"
	"github.com/distkit/distkit/internal/reconcile"
)

var (
	pushSummary string
	pushLabels  []string
	pushUser    string
)

// NewPushCommand creates the push command
func NewPushCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push <file>...",
		Short: "Upload release artifacts from the dist directory",
		Long: `Upload the named dist files to the hosting service.

A file is only uploaded when the remote copy is missing or its SHA1
disagrees with the local digest. The first upload failure halts the batch
with a diagnostic dump.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPush,
	}

	cmd.Flags().StringVarP(&pushSummary, "summary", "s", "", "Summary shown next to the uploaded files")
	cmd.Flags().StringSliceVarP(&pushLabels, "labels", "l", nil, "Labels to attach (e.g. Featured, Type-Source)")
	cmd.Flags().StringVarP(&pushUser, "user", "u", "", "Hosting username (prompted password)")

	return cmd
}

func runPush(cmd *cobra.Command, args []string) error {
	proj, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger()
	defer logger.Sync()

	client := hosting.NewClient(proj.Hosting.Project, proj.Hosting.BaseURL, logger)
	if err := fillCredentials(client, proj, pushUser); err != nil {
		return err
	}

	syncer := &reconcile.Syncer{
		Client:  client,
		DistDir: proj.DistDir,
		Logger:  logger,
	}

	out := cmd.OutOrStdout()
	uploaded := 0
	for _, fname := range args {
		did, err := syncer.MaybeUpload(fname, pushSummary, pushLabels)
		if err != nil {
			return err
		}
		if did {
			ui.Success(out, "Uploaded %s", fname)
			uploaded++
		} else {
			ui.Info(out, "Checksums match, not uploading %s.", fname)
		}
	}
	if uploaded == 0 {
		ui.Info(out, "Nothing to upload.")
	} else {
		ui.Success(out, "Uploaded %d file(s) to project %s", uploaded, proj.Hosting.Project)
	}
	return nil
}

// fillCredentials resolves the hosting username (flag, then config) and
// prompts for the password. Credentials are never persisted.
func fillCredentials(client *hosting.Client, proj *config.Project, userFlag string) error {
	user := userFlag
	if user == "" {
		user = proj.Hosting.Username
	}
	user, pass, err := promptCredentials(user)
	if err != nil {
		return fmt.Errorf("failed to read credentials: %w", err)
	}
	client.Username = user
	client.Password = pass
	return nil
}
