// Package forge talks to the GitHub REST API. It is a thin collaborator:
// the changelog transform itself never touches the network.
package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"
)

// GitHubClient is a minimal GitHub REST API client using token auth.
type GitHubClient struct {
	httpClient *http.Client
	apiURL     string
	token      string
}

// NewGitHubClient creates a new GitHub client. apiURL overrides the public
// endpoint for GitHub Enterprise; empty selects api.github.com.
func NewGitHubClient(token, apiURL string) (*GitHubClient, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub client requires token authentication")
	}
	if apiURL == "" {
		apiURL = "https://api.github.com"
	}
	return &GitHubClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiURL:     apiURL,
		token:      token,
	}, nil
}

// Issue is the subset of issue/PR metadata the changelog entry template can
// reference. GitHub serves pull requests through the issues endpoint too, so
// one fetch path covers both.
type Issue struct {
	Number  int     `json:"number"`
	Title   string  `json:"title"`
	HTMLURL string  `json:"html_url"`
	State   string  `json:"state"`
	User    User    `json:"user"`
	Labels  []Label `json:"labels"`
}

// User identifies the issue author.
type User struct {
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}

// Label is one classification label attached to the issue.
type Label struct {
	Name string `json:"name"`
}

// LabelNames flattens the label objects into the plain strings the
// transform's priority matching expects.
func (i *Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		names = append(names, l.Name)
	}
	return names
}

// Closed reports whether the issue has been closed.
func (i *Issue) Closed() bool {
	return i.State == "closed"
}

// GetIssue fetches a single issue (or pull request) by number.
func (c *GitHubClient) GetIssue(ctx context.Context, owner, repo string, number int) (*Issue, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/issues/%d", owner, repo, number)
	req, err := c.newRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return nil, err
	}

	var issue Issue
	if err := c.doRequest(req, &issue); err != nil {
		return nil, fmt.Errorf("failed to fetch issue #%d: %w", number, err)
	}
	return &issue, nil
}

func (c *GitHubClient) newRequest(ctx context.Context, method, endpoint string) (*http.Request, error) {
	u, err := url.Parse(c.apiURL)
	if err != nil {
		return nil, err
	}
	u.Path = path.Join(u.Path, endpoint)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", "autoChangelog/1.0")

	return req, nil
}

func (c *GitHubClient) doRequest(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("GitHub API error: %s", resp.Status)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}
