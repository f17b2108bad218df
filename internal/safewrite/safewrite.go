// Package safewrite writes generated text files without clobbering
// hand-edited ones.
//
// A file is only overwritten when it does not exist yet or when it carries
// the generated-file marker, proving a previous run of this tool wrote it.
// The previous version is kept in a backup directory under the system temp
// dir; the last backup wins.
package safewrite

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Marker identifies machine-generated files. Any file containing this string
// is considered owned by the tool and safe to replace.
const Marker = "`distkit`"

// Result reports what Write did with the candidate content.
type Result int

const (
	// Written means the destination was created or replaced.
	Written Result = iota
	// Unchanged means the candidate was byte-identical to the existing file.
	Unchanged
	// Protected means the existing file lacks the marker and was left alone.
	Protected
	// Declined means the operator rejected the overwrite prompt.
	Declined
)

// PromptFunc asks the operator a yes/no question.
type PromptFunc func(question string) (bool, error)

// Writer writes document lines with conflict protection. The zero TempDir
// means the system temp directory; the zero Prompt means an interactive
// survey confirmation.
type Writer struct {
	TempDir string
	Prompt  PromptFunc
	Logger  *zap.Logger
}

// New returns a Writer with interactive prompting.
func New(logger *zap.Logger) *Writer {
	return &Writer{Logger: logger}
}

// Write renders lines to dest, honoring the marker protection rules.
func (w *Writer) Write(lines []string, dest string) (Result, error) {
	logger := w.logger()
	content := []byte(strings.Join(lines, "\n") + "\n")

	existing, err := os.ReadFile(dest)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return Protected, fmt.Errorf("failed to read %s: %w", dest, err)
	}

	if exists && !bytes.Contains(existing, []byte(Marker)) {
		logger.Info("not overwritten: missing generated-file marker",
			zap.String("file", dest), zap.String("marker", Marker))
		return Protected, nil
	}

	if exists && bytes.Equal(existing, content) {
		logger.Info("file is unchanged", zap.String("file", dest))
		return Unchanged, nil
	}

	tmpDir := filepath.Join(w.tempDir(), "distkit")
	if err := os.MkdirAll(tmpDir, 0755); err != nil {
		return Protected, fmt.Errorf("failed to create temp directory %s: %w", tmpDir, err)
	}

	candidate := filepath.Join(tmpDir, uuid.NewString()+".tmp")
	if err := os.WriteFile(candidate, content, 0644); err != nil {
		return Protected, fmt.Errorf("failed to write candidate file: %w", err)
	}

	if exists {
		ok, err := w.prompt(fmt.Sprintf("Update %s?", dest))
		if err != nil {
			os.Remove(candidate)
			return Declined, fmt.Errorf("prompt failed: %w", err)
		}
		if !ok {
			os.Remove(candidate)
			logger.Info("operator declined overwrite", zap.String("file", dest))
			return Declined, nil
		}

		backup := filepath.Join(tmpDir, filepath.Base(dest))
		if err := moveFile(dest, backup); err != nil {
			os.Remove(candidate)
			return Declined, fmt.Errorf("failed to back up %s: %w", dest, err)
		}
		logger.Info("backup stored", zap.String("file", dest), zap.String("backup", backup))
	}

	if err := moveFile(candidate, dest); err != nil {
		return Declined, fmt.Errorf("failed to replace %s: %w", dest, err)
	}
	logger.Info("wrote file", zap.String("file", dest))
	return Written, nil
}

func (w *Writer) tempDir() string {
	if w.TempDir != "" {
		return w.TempDir
	}
	return os.TempDir()
}

func (w *Writer) prompt(question string) (bool, error) {
	if w.Prompt != nil {
		return w.Prompt(question)
	}
	var ok bool
	err := survey.AskOne(&survey.Confirm{Message: question}, &ok)
	return ok, err
}

func (w *Writer) logger() *zap.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return zap.NewNop()
}

// moveFile renames src to dst, copying when rename fails (the temp directory
// can live on a different filesystem than the destination).
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
