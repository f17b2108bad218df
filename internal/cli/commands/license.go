package commands

import (
	"github.com/spf13/cobra"

	"github.com/distkit/distkit/internal/cli/config"
	"github.com/distkit/distkit/internal/cli/ui"
	"github.com/distkit/distkit/internal/license"
	"github.com/distkit/distkit/internal/safewrite"
)

var licenseYes bool

// NewLicenseCommand creates the license command
func NewLicenseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "license",
		Short: "Generate the license file",
		Long: `Resolve the project's license identifier to its canonical text, fill in
the current year and the copyright holder, and write the license file.

An existing *license* file name is reused; otherwise LICENSE-2.0.txt is
created. An unknown license identifier is a fatal error.`,
		RunE: runLicense,
	}

	cmd.Flags().BoolVarP(&licenseYes, "yes", "y", false, "Answer yes to overwrite prompts")

	return cmd
}

func runLicense(cmd *cobra.Command, args []string) error {
	proj, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger()
	defer logger.Sync()

	writer := safewrite.New(logger)
	if licenseYes {
		writer.Prompt = func(string) (bool, error) { return true, nil }
	}

	fetcher := license.NewFetcher(writer, logger)
	fname, res, err := fetcher.Generate(proj.License, proj.Holder(), ".")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch res {
	case safewrite.Written:
		ui.Success(out, "Updated %s", fname)
	case safewrite.Unchanged:
		ui.Info(out, "%s is up to date.", fname)
	case safewrite.Protected:
		ui.Warn(out, "%s is hand-edited (no marker), left untouched.", fname)
	case safewrite.Declined:
		ui.Info(out, "%s left unchanged.", fname)
	}
	return nil
}
