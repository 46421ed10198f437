package issues

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-github/v68/github"
)

type fakeCreator struct {
	gotOwner, gotRepo string
	gotIssue          *github.IssueRequest
	err               error
}

func (f *fakeCreator) Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error) {
	f.gotOwner, f.gotRepo, f.gotIssue = owner, repo, issue
	if f.err != nil {
		return nil, nil, f.err
	}
	return &github.Issue{HTMLURL: github.Ptr("https://github.com/shakeyourbunny/RWMSDB/issues/1")}, nil, nil
}

func TestCreateReport(t *testing.T) {
	fake := &fakeCreator{}
	c := &Client{issues: fake}

	url, err := c.CreateReport(context.Background(), "someone", "{\"version\": 2}")
	if err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	if url != "https://github.com/shakeyourbunny/RWMSDB/issues/1" {
		t.Errorf("url = %q", url)
	}
	if fake.gotOwner != "shakeyourbunny" || fake.gotRepo != "RWMSDB" {
		t.Errorf("issue filed against %s/%s", fake.gotOwner, fake.gotRepo)
	}
	if got := fake.gotIssue.GetTitle(); got != "unknown mods found by someone" {
		t.Errorf("title = %q", got)
	}
}

func TestCreateReportError(t *testing.T) {
	c := &Client{issues: &fakeCreator{err: errors.New("api down")}}
	if _, err := c.CreateReport(context.Background(), "someone", "body"); err == nil {
		t.Fatal("CreateReport should propagate API errors")
	}
}
