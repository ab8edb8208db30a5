// Package git performs the working-copy side effects around a successful
// changelog rewrite: pull before reading, stage/commit/push after writing.
package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/PatrickPedersen/autoChangelog/internal/logfields"
)

// Commit identity used for automated changelog commits.
const (
	AuthorName  = "github-actions"
	AuthorEmail = "github-actions@github.com"
)

// Client handles Git operations on the checked-out workspace.
type Client struct {
	repoPath string
	auth     transport.AuthMethod
}

// NewClient creates a client for the repository at repoPath. An empty token
// disables authentication (local remotes, tests); otherwise the token is
// sent as basic auth the way Actions workflows push.
func NewClient(repoPath, token string) *Client {
	var auth transport.AuthMethod
	if token != "" {
		auth = &githttp.BasicAuth{Username: "x-access-token", Password: token}
	}
	return &Client{repoPath: repoPath, auth: auth}
}

// Pull fast-forwards the current branch from origin. Already up to date is
// not an error.
func (c *Client) Pull(ctx context.Context) error {
	repo, err := git.PlainOpen(c.repoPath)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	slog.Debug("Pulling latest changes", logfields.Path(c.repoPath))
	err = worktree.PullContext(ctx, &git.PullOptions{
		RemoteName: "origin",
		Auth:       c.auth,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return classifyRemoteError("pull", err)
	}
	return nil
}

// CommitAndPush stages exactly relPath, commits it with message, and pushes
// to origin.
func (c *Client) CommitAndPush(ctx context.Context, relPath, message string) error {
	repo, err := git.PlainOpen(c.repoPath)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	if _, err := worktree.Add(relPath); err != nil {
		return fmt.Errorf("failed to stage %s: %w", relPath, err)
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  AuthorName,
			Email: AuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit %s: %w", relPath, err)
	}
	slog.Info("Committed changelog update",
		logfields.Path(relPath),
		slog.String("commit", hash.String()[:8]))

	slog.Debug("Pushing changes")
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: "origin",
		Auth:       c.auth,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return classifyRemoteError("push", err)
	}
	return nil
}
