package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of one release run.
type Config struct {
	// ManifestPath is the dependency manifest rewritten by the run.
	ManifestPath string `yaml:"manifest_path"`
	// RepoDir is the working tree git commands run in.
	RepoDir string `yaml:"repo_dir"`
	// Remote is the git remote the release branch is pushed to.
	Remote string `yaml:"remote"`
	// RemoteHost is the code host serving the repository, e.g. github.com.
	RemoteHost string `yaml:"remote_host"`
	// Owner and Repository identify the repository on the code host.
	Owner      string `yaml:"owner"`
	Repository string `yaml:"repository"`
	// BotUser and BotEmail are used as push credentials user and commit identity.
	BotUser  string `yaml:"bot_user"`
	BotEmail string `yaml:"bot_email"`
	// BranchPrefix is prepended to the release version to name the working branch.
	BranchPrefix string `yaml:"branch_prefix"`
	// BaseBranch is the target of the optional pull request.
	BaseBranch string `yaml:"base_branch"`
	// CommitMessage is the message of the release commit.
	CommitMessage string `yaml:"commit_message"`
	// MirrorPrefix identifies the always-present mirror download entry.
	MirrorPrefix string `yaml:"mirror_prefix"`
	// SourceControlPrefix identifies code host download entries.
	SourceControlPrefix string `yaml:"source_control_prefix"`
	// ReleaseHost is the code host project serving release archives.
	ReleaseHost string `yaml:"release_host"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is read when no --config flag is given.
	DefaultConfigFilename = "release-updates.yaml"

	// DefaultManifestPath is the manifest maintained by rules_java.
	DefaultManifestPath = "repositories.bzl"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is validated.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errFieldRequired is returned when a mandatory field is empty.
	errFieldRequired = errors.New("field must be set")
	// errHostMismatch is returned when inserted release urls would not be recognized as code host urls.
	errHostMismatch = errors.New("release host mismatch")
	// errInvalidLogLevel is returned for unknown log level names.
	errInvalidLogLevel = errors.New("invalid log level")
)

// Default returns the settings used by the java_tools release pipeline.
func Default() *Config {
	return &Config{
		ManifestPath:        DefaultManifestPath,
		RepoDir:             ".",
		Remote:              "origin",
		RemoteHost:          "github.com",
		Owner:               "bazelbuild",
		Repository:          "rules_java",
		BotUser:             "bazel-io",
		BotEmail:            "bazel-io@google.com",
		BranchPrefix:        "java_tools-",
		BaseBranch:          "master",
		CommitMessage:       "Update java_tools",
		MirrorPrefix:        "https://mirror.bazel.build",
		SourceControlPrefix: "https://github.com",
		ReleaseHost:         "https://github.com/bazelbuild/java_tools",
		LogLevel:            "info",
	}
}

// Load reads YAML settings from path on top of Default.
// A missing file at the default location is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, Validate(cfg)
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err = yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and URL formats.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	required := map[string]string{
		"manifest_path":         cfg.ManifestPath,
		"remote":                cfg.Remote,
		"remote_host":           cfg.RemoteHost,
		"owner":                 cfg.Owner,
		"repository":            cfg.Repository,
		"bot_user":              cfg.BotUser,
		"branch_prefix":         cfg.BranchPrefix,
		"commit_message":        cfg.CommitMessage,
		"mirror_prefix":         cfg.MirrorPrefix,
		"source_control_prefix": cfg.SourceControlPrefix,
		"release_host":          cfg.ReleaseHost,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s: %w", name, errFieldRequired)
		}
	}

	if cfg.RepoDir == "" {
		cfg.RepoDir = "."
	}

	for name, raw := range map[string]string{
		"mirror_prefix":         cfg.MirrorPrefix,
		"source_control_prefix": cfg.SourceControlPrefix,
		"release_host":          cfg.ReleaseHost,
	} {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	if !strings.HasPrefix(cfg.ReleaseHost, cfg.SourceControlPrefix) {
		return fmt.Errorf("%w: release_host %q must start with source_control_prefix %q",
			errHostMismatch, cfg.ReleaseHost, cfg.SourceControlPrefix)
	}

	if !validLogLevel(cfg.LogLevel) {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.LogLevel)
	}

	return nil
}

// ManifestFile returns ManifestPath resolved against RepoDir.
func (c *Config) ManifestFile() string {
	if filepath.IsAbs(c.ManifestPath) {
		return c.ManifestPath
	}

	return filepath.Join(c.RepoDir, c.ManifestPath)
}

// BranchName returns the working branch for a release version.
func (c *Config) BranchName(version string) string {
	return c.BranchPrefix + version
}

// validLogLevel accepts the names understood by logger.ParseLogLevel.
func validLogLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}
