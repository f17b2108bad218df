package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Project is the metadata declaration supplied by the invoking project.
// Optional fields use zero values for absence; rendering code checks for
// empty slices/strings instead of probing for attribute existence.
type Project struct {
	Name            string   `mapstructure:"name"`
	Version         string   `mapstructure:"version"`
	Description     string   `mapstructure:"description"`
	LongDescription string   `mapstructure:"long_description"`
	License         string   `mapstructure:"license"`
	URL             string   `mapstructure:"url"`
	VCS             string   `mapstructure:"vcs"`
	Author          string   `mapstructure:"author"`
	CopyrightHolder string   `mapstructure:"copyright_holder"`
	Langs           []string `mapstructure:"langs"`
	Depends         []string `mapstructure:"depends"`
	LocaleDir       string   `mapstructure:"locale_dir"`
	DistDir         string   `mapstructure:"dist_dir"`
	Hosting         Hosting  `mapstructure:"hosting"`
}

// Hosting identifies the legacy hosting service the release artifacts live on.
type Hosting struct {
	Project  string `mapstructure:"project"`
	BaseURL  string `mapstructure:"base_url"`
	Username string `mapstructure:"username"`
}

// Load loads the configuration from distkit.yml or distkit.yaml
func Load() (*Project, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("locale_dir", "locale")
	v.SetDefault("dist_dir", "dist")
	v.SetDefault("hosting.base_url", "http://code.google.com")

	// Set config name and paths
	v.SetConfigName("distkit")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.SetEnvPrefix("DISTKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var proj Project
	if err := v.Unmarshal(&proj); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateProject(&proj); err != nil {
		return nil, err
	}

	// The hosting project defaults to the package name
	if proj.Hosting.Project == "" {
		proj.Hosting.Project = proj.Name
	}

	return &proj, nil
}

// Holder returns the copyright holder, falling back to the author.
func (p *Project) Holder() string {
	if p.CopyrightHolder != "" {
		return p.CopyrightHolder
	}
	return p.Author
}

// InProject checks if the current directory carries a distkit declaration
func InProject() bool {
	if _, err := os.Stat("distkit.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("distkit.yaml"); err == nil {
		return true
	}
	return false
}

// validateProject validates the metadata declaration
func validateProject(p *Project) error {
	if p.Name == "" {
		return fmt.Errorf("name is required (set it in distkit.yml)")
	}
	if p.Version == "" {
		return fmt.Errorf("version is required (set it in distkit.yml)")
	}
	if p.URL != "" && !strings.HasPrefix(p.URL, "http://") && !strings.HasPrefix(p.URL, "https://") {
		return fmt.Errorf("url must be an http(s) URL, got: %s", p.URL)
	}
	for _, lang := range p.Langs {
		if strings.ContainsAny(lang, "/\\ ") {
			return fmt.Errorf("invalid locale code: %q", lang)
		}
	}
	return nil
}
