package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/PatrickPedersen/autoChangelog/internal/changelog"
	"github.com/PatrickPedersen/autoChangelog/internal/config"
	"github.com/PatrickPedersen/autoChangelog/internal/forge"
	"github.com/PatrickPedersen/autoChangelog/internal/git"
	"github.com/PatrickPedersen/autoChangelog/internal/logfields"
	"github.com/PatrickPedersen/autoChangelog/internal/markdown"
	"github.com/PatrickPedersen/autoChangelog/internal/templates"
	"github.com/PatrickPedersen/autoChangelog/internal/version"
)

var CLI struct {
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Run struct {
	} `cmd:"" help:"Insert a changelog entry for the closed issue in the trigger event, then commit and push"`

	Preview struct {
		Number int `short:"n" required:"" help:"Issue number to preview"`
	} `cmd:"" help:"Print the rewritten changelog for an issue without writing or pushing"`

	Lint struct {
	} `cmd:"" help:"Check changelog structure against the configured sections"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("autochangelog"),
		kong.Description("Keeps a changelog section up to date from closed GitHub issues and pull requests."),
		kong.Vars{"version": version.Version})

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose || settings.DebugLogs {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Execute command
	switch ctx.Command() {
	case "run":
		os.Exit(runUpdate(settings))
	case "preview":
		os.Exit(runPreview(settings, CLI.Preview.Number))
	case "lint":
		os.Exit(runLint(settings))
	}
}

// runUpdate is the full Action flow: event -> issue -> transform -> commit.
func runUpdate(settings *config.Settings) int {
	if err := settings.Validate(); err != nil {
		slog.Error("Invalid settings", logfields.Error(err))
		return 1
	}
	if err := git.EnsureSafeDirectory(""); err != nil {
		slog.Error("Failed to configure safe directory", logfields.Error(err))
		return 1
	}

	if _, err := os.Stat(settings.EventPath); err != nil {
		slog.Error("Event file not found", logfields.Path(settings.EventPath))
		return 1
	}
	number, err := forge.IssueNumberFromEvent(settings.EventPath, settings.EventName)
	if err != nil {
		slog.Error("No issue number found in event",
			logfields.Path(settings.EventPath),
			logfields.Event(settings.EventName),
			logfields.Error(err))
		return 1
	}

	issue, err := fetchIssue(settings, number)
	if err != nil {
		slog.Error("Failed to fetch issue", logfields.Issue(number), logfields.Error(err))
		return 1
	}
	if !issue.Closed() {
		slog.Error("Issue is not closed", logfields.Issue(issue.Number))
		return 0
	}

	if _, err := os.Stat(settings.ChangelogFile); err != nil {
		slog.Error("Changelog file not found", logfields.Path(settings.ChangelogFile))
		return 1
	}

	slog.Info("Updating changelog",
		logfields.Repository(settings.Repository),
		logfields.Issue(issue.Number),
		logfields.Path(settings.ChangelogFile))

	gitClient := git.NewClient(".", settings.Token)
	slog.Info("Pulling latest changes")
	if err := gitClient.Pull(context.Background()); err != nil {
		slog.Error("Failed to pull", logfields.Error(err))
		return 1
	}

	newContent, err := rewriteChangelog(settings, issue)
	if err != nil {
		var dup *changelog.DuplicateEntryError
		if errors.As(err, &dup) {
			slog.Warn("Changelog entry already exists, nothing to do", logfields.Issue(dup.Number))
			return 0
		}
		slog.Error("Failed to update changelog", logfields.Error(err))
		return 1
	}
	if err := os.WriteFile(settings.ChangelogFile, []byte(newContent), 0o644); err != nil {
		slog.Error("Failed to write changelog", logfields.Path(settings.ChangelogFile), logfields.Error(err))
		return 1
	}

	slog.Info("Committing changes", logfields.Path(settings.ChangelogFile))
	if err := gitClient.CommitAndPush(context.Background(), settings.ChangelogFile, settings.CommitMessage); err != nil {
		slog.Error("Failed to commit and push", logfields.Error(err))
		return 1
	}

	slog.Info("Changelog updated successfully", logfields.Issue(issue.Number))
	return 0
}

// runPreview fetches the issue and prints the rewritten document to stdout.
func runPreview(settings *config.Settings, number int) int {
	if err := settings.Validate(); err != nil {
		slog.Error("Invalid settings", logfields.Error(err))
		return 1
	}

	issue, err := fetchIssue(settings, number)
	if err != nil {
		slog.Error("Failed to fetch issue", logfields.Issue(number), logfields.Error(err))
		return 1
	}

	newContent, err := rewriteChangelog(settings, issue)
	if err != nil {
		slog.Error("Failed to rewrite changelog", logfields.Error(err))
		return 1
	}
	fmt.Print(newContent)
	return 0
}

// runLint reports structural problems in the changelog file.
func runLint(settings *config.Settings) int {
	data, err := os.ReadFile(settings.ChangelogFile)
	if err != nil {
		slog.Error("Changelog file not found", logfields.Path(settings.ChangelogFile))
		return 1
	}

	headers := make([]string, 0, len(settings.Labels))
	for _, sec := range settings.Labels {
		headers = append(headers, sec.Header)
	}

	problems, err := markdown.LintChangelog(string(data),
		settings.ChangelogTitle, settings.EndRegex, settings.LabelHeaderPrefix, headers)
	if err != nil {
		slog.Error("Lint failed", logfields.Error(err))
		return 1
	}
	if len(problems) == 0 {
		slog.Info("Changelog structure looks good", logfields.Path(settings.ChangelogFile))
		return 0
	}
	for _, p := range problems {
		slog.Warn(p.Message, logfields.Path(settings.ChangelogFile))
	}
	return 1
}

func fetchIssue(settings *config.Settings, number int) (*forge.Issue, error) {
	owner, repo, err := settings.OwnerRepo()
	if err != nil {
		return nil, err
	}
	client, err := forge.NewGitHubClient(settings.Token, "")
	if err != nil {
		return nil, err
	}
	return client.GetIssue(context.Background(), owner, repo, number)
}

// rewriteChangelog reads the changelog, renders the entry, and runs the
// transform. Pure with respect to git; the caller handles writing and
// committing.
func rewriteChangelog(settings *config.Settings, issue *forge.Issue) (string, error) {
	data, err := os.ReadFile(settings.ChangelogFile)
	if err != nil {
		return "", fmt.Errorf("read changelog %s: %w", settings.ChangelogFile, err)
	}

	templateText, err := templates.LoadTemplate(settings.TemplateFile)
	if err != nil {
		return "", err
	}
	message, err := templates.RenderMessage(templateText, issue)
	if err != nil {
		return "", err
	}
	slog.Debug("Rendered changelog entry", slog.String("message", message))

	return changelog.Transform(string(data), changelog.Options{
		TitlePattern:       settings.ChangelogTitle,
		NextReleasePattern: settings.EndRegex,
		HeaderPrefix:       settings.LabelHeaderPrefix,
		Sections:           settings.Labels,
		Message:            message,
		IssueNumber:        issue.Number,
		IssueLabels:        issue.LabelNames(),
	})
}
