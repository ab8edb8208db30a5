package config

import "github.com/PatrickPedersen/autoChangelog/internal/changelog"

// Defaults matching the published action inputs.
const (
	DefaultChangelogFile     = "README.md"
	DefaultChangelogTitle    = "### Latest Changes"
	DefaultEndRegex          = "(^### .*)|(^## .*)"
	DefaultLabelHeaderPrefix = "#### "
	DefaultCommitMessage     = "[CI] Update Changelog"
)

// DefaultSections returns the built-in label mapping in priority order.
// Returned as a fresh slice so callers can append without aliasing.
func DefaultSections() []changelog.Section {
	return []changelog.Section{
		{Label: "breaking", Header: "Breaking Changes"},
		{Label: "security", Header: "Security Fixes"},
		{Label: "feature", Header: "Features"},
		{Label: "bug", Header: "Fixes"},
		{Label: "refactor", Header: "Refactors"},
		{Label: "upgrade", Header: "Upgrades"},
		{Label: "docs", Header: "Docs"},
		{Label: "lang-all", Header: "Translations"},
		{Label: "internal", Header: "Internal"},
	}
}
