package commands

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/distkit/distkit/internal/cli/config"
	"github.com/distkit/distkit/internal/cli/ui"
	"github.com/distkit/distkit/internal/hosting"
	"github.com/distkit/distkit/internal/reconcile"
)

var (
	unfeatureExcept []string
	unfeatureUser   string
)

// NewUnfeatureCommand creates the unfeature command
func NewUnfeatureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unfeature",
		Short: "Remove the Featured label from remote artifacts",
		Long: `Remove the Featured label from every remote artifact still carrying it,
usually in preparation for uploading newly featured files.

The legacy host only changes labels on a full re-upload, so each affected
artifact is first verified (or downloaded) locally and then re-uploaded
with the reduced label set. The re-upload resets the artifact's displayed
last-updated timestamp.`,
		RunE: runUnfeature,
	}

	cmd.Flags().StringSliceVar(&unfeatureExcept, "except", nil, "Filenames to leave featured")
	cmd.Flags().StringVarP(&unfeatureUser, "user", "u", "", "Hosting username (prompted password)")

	return cmd
}

func runUnfeature(cmd *cobra.Command, args []string) error {
	proj, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger()
	defer logger.Sync()

	client := hosting.NewClient(proj.Hosting.Project, proj.Hosting.BaseURL, logger)
	if err := fillCredentials(client, proj, unfeatureUser); err != nil {
		return err
	}

	syncer := &reconcile.Syncer{
		Client:  client,
		DistDir: proj.DistDir,
		Logger:  logger,
	}

	if err := syncer.RemoveFeatured(unfeatureExcept); err != nil {
		return err
	}

	ui.Success(cmd.OutOrStdout(), "Featured labels cleared for project %s", proj.Hosting.Project)
	return nil
}

// promptCredentials asks for the hosting username (when not already known)
// and always asks for the password interactively.
func promptCredentials(user string) (string, string, error) {
	if user == "" {
		if err := survey.AskOne(&survey.Input{Message: "Hosting username:"}, &user,
			survey.WithValidator(survey.Required)); err != nil {
			return "", "", err
		}
	}
	var pass string
	if err := survey.AskOne(&survey.Password{Message: "Password for " + user + ":"}, &pass,
		survey.WithValidator(survey.Required)); err != nil {
		return "", "", err
	}
	return user, pass, nil
}
