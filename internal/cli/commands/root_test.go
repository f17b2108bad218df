package commands

import (
	"testing"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	if cmd.Use != "distkit" {
		t.Errorf("expected Use to be 'distkit', got %s", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}

	// Check subcommands are registered
	expectedCommands := []string{
		"version",
		"docs",
		"license",
		"sync",
		"push",
		"unfeature",
	}

	for _, expected := range expectedCommands {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == expected {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected command %s to be registered", expected)
		}
	}
}

func TestNewVersionCommand(t *testing.T) {
	// Set test version info
	Version = "1.0.0-test"
	GitCommit = "abc123"
	BuildDate = "2026-01-01"

	cmd := NewVersionCommand()

	if cmd.Use != "version" {
		t.Errorf("expected Use to be 'version', got %s", cmd.Use)
	}

	// The version command prints colored output straight to stdout, so just
	// verify the command runs
	if cmd.Run == nil {
		t.Fatal("version command Run function is nil")
	}

	cmd.Run(cmd, []string{})
}

func TestPushRequiresArguments(t *testing.T) {
	cmd := NewPushCommand()
	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("expected push with no files to fail argument validation")
	}
	if err := cmd.Args(cmd, []string{"dist/myproj-0.3.1.zip"}); err != nil {
		t.Errorf("expected push with a file to pass validation, got %v", err)
	}
}
