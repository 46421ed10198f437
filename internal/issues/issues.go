// Package issues files unknown-mod reports as GitHub issues on the database
// repository. It is an optional collaborator: the sort never depends on it
// succeeding, and it only runs when explicitly requested.
package issues

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// The database repository accepting unknown-mod reports.
const (
	repoOwner = "shakeyourbunny"
	repoName  = "RWMSDB"
)

// Client files issues on the database repository.
type Client struct {
	issues issueCreator
}

// issueCreator is the slice of the GitHub API the client needs; tests
// substitute a fake.
type issueCreator interface {
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

// New returns a Client authenticated with the given token.
func New(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	gh := github.NewClient(oauth2.NewClient(ctx, ts))
	return &Client{issues: gh.Issues}
}

// CreateReport opens an issue titled for the reporting user with the
// unknown-mod report as its body and returns the issue URL.
func (c *Client) CreateReport(ctx context.Context, user, body string) (string, error) {
	issue, _, err := c.issues.Create(ctx, repoOwner, repoName, &github.IssueRequest{
		Title: github.Ptr("unknown mods found by " + user),
		Body:  github.Ptr(body),
	})
	if err != nil {
		return "", fmt.Errorf("creating issue: %w", err)
	}
	return issue.GetHTMLURL(), nil
}
