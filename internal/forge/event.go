package forge

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Webhook event payloads differ per trigger. partialEvent decodes only the
// fields needed to pick the issue number; everything else is fetched fresh
// from the API so stale payload data never leaks into the changelog.
type partialEvent struct {
	Issue *struct {
		Number *int `json:"number"`
	} `json:"issue"`
	PullRequest *struct {
		Number *int `json:"number"`
	} `json:"pull_request"`
	Inputs map[string]json.RawMessage `json:"inputs"`
}

// NumberNotFoundError reports that no issue number could be extracted from
// the event payload.
type NumberNotFoundError struct {
	EventName string
	Path      string
}

func (e *NumberNotFoundError) Error() string {
	return fmt.Sprintf("no issue number found in %s event at %s", e.EventName, e.Path)
}

// IssueNumberFromEvent reads the event payload file and extracts the issue
// number for the given trigger: issues and pull_request events carry it
// directly, workflow_dispatch carries it as a manual "number" input.
func IssueNumberFromEvent(eventPath, eventName string) (int, error) {
	data, err := os.ReadFile(eventPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read event file %s: %w", eventPath, err)
	}

	var event partialEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return 0, fmt.Errorf("failed to parse event file %s: %w", eventPath, err)
	}

	if event.Issue != nil && event.Issue.Number != nil {
		return *event.Issue.Number, nil
	}
	if event.PullRequest != nil && event.PullRequest.Number != nil {
		return *event.PullRequest.Number, nil
	}
	if n, ok := dispatchNumber(event.Inputs); ok {
		return n, nil
	}
	return 0, &NumberNotFoundError{EventName: eventName, Path: eventPath}
}

// dispatchNumber pulls a manual issue number out of workflow_dispatch
// inputs. Action inputs arrive as strings, so both forms are accepted.
func dispatchNumber(inputs map[string]json.RawMessage) (int, bool) {
	raw, ok := inputs["number"]
	if !ok {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
	}
	return 0, false
}
