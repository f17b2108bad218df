package commands

import (
	"github.com/spf13/cobra"

	"github.com/distkit/distkit/internal/cli/config"
	"github.com/distkit/distkit/internal/cli/ui"
	"github.com/distkit/distkit/internal/docgen"
	"github.com/distkit/distkit/internal/pkgindex"
	"github.com/distkit/distkit/internal/safewrite"
)

var docsYes bool

// NewDocsCommand creates the docs command
func NewDocsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate README and INSTALL files",
		Long: `Generate README.rst and INSTALL.rst from the distkit.yml metadata
declaration, once per configured locale plus once for the default locale.

Existing files are only replaced when they carry the generated-file marker;
on genuine content conflicts you are prompted before anything is touched.`,
		RunE: runDocs,
	}

	cmd.Flags().BoolVarP(&docsYes, "yes", "y", false, "Answer yes to overwrite prompts")

	return cmd
}

func runDocs(cmd *cobra.Command, args []string) error {
	proj, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger()
	defer logger.Sync()

	writer := safewrite.New(logger)
	if docsYes {
		writer.Prompt = func(string) (bool, error) { return true, nil }
	}

	gen := &docgen.Generator{
		Project: proj,
		Index:   pkgindex.NewAptCache(),
		Writer:  writer,
		Logger:  logger,
	}

	var written []string
	for _, doc := range []struct {
		base   string
		render docgen.RenderFunc
	}{
		{"README", docgen.Readme},
		{"INSTALL", docgen.Install},
	} {
		files, err := gen.WriteAll(doc.base, doc.render)
		written = append(written, files...)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if len(written) == 0 {
		ui.Info(out, "All documents are up to date.")
		return nil
	}
	for _, f := range written {
		ui.Success(out, "Updated %s", f)
	}
	return nil
}
