package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Actions containers run the workflow as a different uid than the checkout
// owner; git refuses to operate unless the workspace is marked safe.
// Ref: https://github.com/actions/runner/issues/2033
const safeDirectoryConfig = "[safe]\n\tdirectory = /github/workspace\n"

// EnsureSafeDirectory marks /github/workspace as a safe git directory in the
// user-level gitconfig under home. Called once by the CLI driver before any
// repository operation; never by the transform.
func EnsureSafeDirectory(home string) error {
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to resolve home directory: %w", err)
		}
	}
	path := filepath.Join(home, ".gitconfig")

	if data, err := os.ReadFile(path); err == nil {
		if strings.Contains(string(data), "directory = /github/workspace") {
			return nil
		}
	}
	if err := os.WriteFile(path, []byte(safeDirectoryConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
