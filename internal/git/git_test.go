package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRepos creates a bare origin and a working repository with one pushed
// commit, returning both paths.
func setupRepos(t *testing.T) (bareDir, workDir string) {
	t.Helper()
	bareDir = t.TempDir()
	workDir = t.TempDir()

	_, err := gogit.PlainInit(bareDir, true)
	require.NoError(t, err)

	work, err := gogit.PlainInit(workDir, false)
	require.NoError(t, err)

	_, err = work.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{bareDir},
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(workDir, "README.md"), []byte("### Latest Changes\n"), 0o644))

	wt, err := work.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "t@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	require.NoError(t, work.Push(&gogit.PushOptions{RemoteName: "origin"}))
	return bareDir, workDir
}

func TestCommitAndPush(t *testing.T) {
	bareDir, workDir := setupRepos(t)

	require.NoError(t, os.WriteFile(
		filepath.Join(workDir, "README.md"),
		[]byte("### Latest Changes\n\n#### Fixes\n\n* new fix\n"), 0o644))

	client := NewClient(workDir, "")
	require.NoError(t, client.CommitAndPush(context.Background(), "README.md", "[CI] Update Changelog"))

	work, err := gogit.PlainOpen(workDir)
	require.NoError(t, err)
	workHead, err := work.Head()
	require.NoError(t, err)

	bare, err := gogit.PlainOpen(bareDir)
	require.NoError(t, err)
	bareRef, err := bare.Reference(plumbing.Master, true)
	require.NoError(t, err)
	assert.Equal(t, workHead.Hash(), bareRef.Hash())

	commit, err := work.CommitObject(workHead.Hash())
	require.NoError(t, err)
	assert.Equal(t, "[CI] Update Changelog", commit.Message)
	assert.Equal(t, AuthorName, commit.Author.Name)
	assert.Equal(t, AuthorEmail, commit.Author.Email)
}

func TestPull_AlreadyUpToDate(t *testing.T) {
	_, workDir := setupRepos(t)

	client := NewClient(workDir, "")
	require.NoError(t, client.Pull(context.Background()))
}

func TestPull_NotARepository(t *testing.T) {
	client := NewClient(t.TempDir(), "")
	require.Error(t, client.Pull(context.Background()))
}

func TestCommitAndPush_MissingFile(t *testing.T) {
	_, workDir := setupRepos(t)

	client := NewClient(workDir, "")
	err := client.CommitAndPush(context.Background(), "CHANGELOG.md", "msg")
	require.Error(t, err)
}

func TestEnsureSafeDirectory(t *testing.T) {
	home := t.TempDir()

	require.NoError(t, EnsureSafeDirectory(home))
	data, err := os.ReadFile(filepath.Join(home, ".gitconfig"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "directory = /github/workspace")

	// Second call leaves an existing entry alone.
	require.NoError(t, EnsureSafeDirectory(home))
}

func TestEnsureSafeDirectory_PreservesExistingEntry(t *testing.T) {
	home := t.TempDir()
	existing := "[user]\n\tname = dev\n[safe]\n\tdirectory = /github/workspace\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, ".gitconfig"), []byte(existing), 0o644))

	require.NoError(t, EnsureSafeDirectory(home))
	data, err := os.ReadFile(filepath.Join(home, ".gitconfig"))
	require.NoError(t, err)
	assert.Equal(t, existing, string(data))
}
