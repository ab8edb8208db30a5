// Package config loads the Action settings from the environment, following
// the GitHub Actions INPUT_* convention, with optional .env files for local
// runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/PatrickPedersen/autoChangelog/internal/changelog"
)

// Settings represents the full runtime configuration.
type Settings struct {
	// Repository is the "owner/name" slug from GITHUB_REPOSITORY.
	Repository string
	// EventPath points at the JSON event payload (GITHUB_EVENT_PATH).
	EventPath string
	// EventName is the triggering event type (GITHUB_EVENT_NAME).
	EventName string
	// Token authenticates API calls and the push (INPUT_TOKEN).
	Token string

	ChangelogFile     string
	ChangelogTitle    string
	TemplateFile      string
	EndRegex          string
	LabelHeaderPrefix string
	CommitMessage     string
	DebugLogs         bool

	// Labels is the ordered label-to-header mapping. Order is priority
	// order.
	Labels []changelog.Section
}

// Load builds Settings from the process environment. A .env / .env.local
// file is applied first when present; existing environment variables are
// never overridden.
func Load() (*Settings, error) {
	loadEnvFile()

	s := &Settings{
		Repository:        os.Getenv("GITHUB_REPOSITORY"),
		EventPath:         os.Getenv("GITHUB_EVENT_PATH"),
		EventName:         os.Getenv("GITHUB_EVENT_NAME"),
		Token:             os.Getenv("INPUT_TOKEN"),
		ChangelogFile:     envOr("INPUT_CHANGELOG_FILE", DefaultChangelogFile),
		ChangelogTitle:    envOr("INPUT_CHANGELOG_TITLE", DefaultChangelogTitle),
		TemplateFile:      os.Getenv("INPUT_TEMPLATE_FILE"),
		EndRegex:          envOr("INPUT_END_REGEX", DefaultEndRegex),
		LabelHeaderPrefix: envOr("INPUT_LABEL_HEADER_PREFIX", DefaultLabelHeaderPrefix),
		CommitMessage:     envOr("INPUT_COMMIT_MESSAGE", DefaultCommitMessage),
	}

	if raw := os.Getenv("INPUT_DEBUG_LOGS"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid INPUT_DEBUG_LOGS value %q: %w", raw, err)
		}
		s.DebugLogs = v
	}

	labels, err := parseLabels(os.Getenv("INPUT_LABELS"))
	if err != nil {
		return nil, err
	}
	s.Labels = labels

	return s, nil
}

// Validate checks the fields every remote operation needs. The event path
// is checked separately by the run command; preview has no event file.
func (s *Settings) Validate() error {
	if s.Repository == "" {
		return fmt.Errorf("GITHUB_REPOSITORY is not set")
	}
	if s.Token == "" {
		return fmt.Errorf("INPUT_TOKEN is not set")
	}
	return nil
}

// OwnerRepo splits the repository slug into its owner and name parts.
func (s *Settings) OwnerRepo() (owner, repo string, err error) {
	parts := strings.SplitN(s.Repository, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository slug %q", s.Repository)
	}
	return parts[0], parts[1], nil
}

// parseLabels decodes the INPUT_LABELS YAML list, falling back to the
// default mapping when unset. Labels must be unique; order is preserved.
func parseLabels(raw string) ([]changelog.Section, error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultSections(), nil
	}
	var sections []changelog.Section
	if err := yaml.Unmarshal([]byte(raw), &sections); err != nil {
		return nil, fmt.Errorf("failed to parse INPUT_LABELS: %w", err)
	}
	seen := make(map[string]bool, len(sections))
	for _, sec := range sections {
		if sec.Label == "" || sec.Header == "" {
			return nil, fmt.Errorf("INPUT_LABELS entries need both label and header (got %+v)", sec)
		}
		if seen[sec.Label] {
			return nil, fmt.Errorf("duplicate label %q in INPUT_LABELS", sec.Label)
		}
		seen[sec.Label] = true
	}
	return sections, nil
}

// loadEnvFile applies .env/.env.local when present. Process environment
// always wins; a missing file is not an error.
func loadEnvFile() {
	for _, path := range []string{".env", ".env.local"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", path)
			return
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
