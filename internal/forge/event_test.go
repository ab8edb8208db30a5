package forge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvent(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	return path
}

func TestIssueNumberFromEvent_IssueEvent(t *testing.T) {
	path := writeEvent(t, `{"action":"closed","issue":{"number":17}}`)

	n, err := IssueNumberFromEvent(path, "issues")
	require.NoError(t, err)
	assert.Equal(t, 17, n)
}

func TestIssueNumberFromEvent_PullRequestEvent(t *testing.T) {
	path := writeEvent(t, `{"action":"closed","pull_request":{"number":99}}`)

	n, err := IssueNumberFromEvent(path, "pull_request")
	require.NoError(t, err)
	assert.Equal(t, 99, n)
}

func TestIssueNumberFromEvent_DispatchStringInput(t *testing.T) {
	path := writeEvent(t, `{"inputs":{"number":"123"}}`)

	n, err := IssueNumberFromEvent(path, "workflow_dispatch")
	require.NoError(t, err)
	assert.Equal(t, 123, n)
}

func TestIssueNumberFromEvent_DispatchIntInput(t *testing.T) {
	path := writeEvent(t, `{"inputs":{"number":123}}`)

	n, err := IssueNumberFromEvent(path, "workflow_dispatch")
	require.NoError(t, err)
	assert.Equal(t, 123, n)
}

func TestIssueNumberFromEvent_MissingNumber(t *testing.T) {
	path := writeEvent(t, `{"action":"closed"}`)

	_, err := IssueNumberFromEvent(path, "issues")
	var notFound *NumberNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "issues", notFound.EventName)
}

func TestIssueNumberFromEvent_MissingFile(t *testing.T) {
	_, err := IssueNumberFromEvent(filepath.Join(t.TempDir(), "nope.json"), "issues")
	require.Error(t, err)
}

func TestIssueNumberFromEvent_MalformedJSON(t *testing.T) {
	path := writeEvent(t, `{not json`)

	_, err := IssueNumberFromEvent(path, "issues")
	require.Error(t, err)
}
