package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	declaration := `
name: myproj
version: 0.3.1
description: A sample project
license: Apache 2.0
url: http://code.google.com/p/myproj/
author: Jane Dev
langs:
  - pt_BR
depends:
  - python-gtk2
hosting:
  username: jane
`
	os.WriteFile("distkit.yml", []byte(declaration), 0644)

	proj, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if proj.Name != "myproj" {
		t.Errorf("expected name 'myproj', got %s", proj.Name)
	}

	if proj.Version != "0.3.1" {
		t.Errorf("expected version '0.3.1', got %s", proj.Version)
	}

	if len(proj.Langs) != 1 || proj.Langs[0] != "pt_BR" {
		t.Errorf("expected langs [pt_BR], got %v", proj.Langs)
	}

	// Check defaults
	if proj.LocaleDir != "locale" {
		t.Errorf("expected default locale dir 'locale', got %s", proj.LocaleDir)
	}

	if proj.DistDir != "dist" {
		t.Errorf("expected default dist dir 'dist', got %s", proj.DistDir)
	}

	if proj.Hosting.BaseURL != "http://code.google.com" {
		t.Errorf("expected default hosting base URL, got %s", proj.Hosting.BaseURL)
	}

	// The hosting project falls back to the package name
	if proj.Hosting.Project != "myproj" {
		t.Errorf("expected hosting project 'myproj', got %s", proj.Hosting.Project)
	}

	if proj.Hosting.Username != "jane" {
		t.Errorf("expected hosting username 'jane', got %s", proj.Hosting.Username)
	}
}

func TestLoadMissingName(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	os.WriteFile("distkit.yml", []byte("version: 1.0\n"), 0644)

	if _, err := Load(); err == nil {
		t.Error("expected error when name is missing, got nil")
	}
}

func TestValidateProject(t *testing.T) {
	tests := []struct {
		name    string
		proj    Project
		wantErr bool
	}{
		{
			name: "valid minimal",
			proj: Project{Name: "myproj", Version: "1.0"},
		},
		{
			name:    "missing name",
			proj:    Project{Version: "1.0"},
			wantErr: true,
		},
		{
			name:    "missing version",
			proj:    Project{Name: "myproj"},
			wantErr: true,
		},
		{
			name:    "non-http url",
			proj:    Project{Name: "myproj", Version: "1.0", URL: "ftp://example.org"},
			wantErr: true,
		},
		{
			name: "https url",
			proj: Project{Name: "myproj", Version: "1.0", URL: "https://example.org"},
		},
		{
			name:    "locale code with path separator",
			proj:    Project{Name: "myproj", Version: "1.0", Langs: []string{"../etc"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProject(&tt.proj)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateProject() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHolderFallsBackToAuthor(t *testing.T) {
	p := &Project{Author: "Jane Dev"}
	if got := p.Holder(); got != "Jane Dev" {
		t.Errorf("expected holder 'Jane Dev', got %s", got)
	}

	p.CopyrightHolder = "Example Corp"
	if got := p.Holder(); got != "Example Corp" {
		t.Errorf("expected holder 'Example Corp', got %s", got)
	}
}

func TestInProject(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	if InProject() {
		t.Error("expected InProject to return false in empty directory")
	}

	os.WriteFile("distkit.yaml", []byte(""), 0644)

	if !InProject() {
		t.Error("expected InProject to return true with distkit.yaml present")
	}
}
