// Package workshop resolves mod display names from Steam Workshop pages
// when a mod's local descriptor is unusable. The page title carries the mod
// name, prefixed with "Steam Workshop ::".
package workshop

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	pageURL     = "https://steamcommunity.com/sharedfiles/filedetails/?id="
	titlePrefix = "Steam Workshop :: "
	errorTitle  = "Steam Community :: Error"
)

// Resolver looks up workshop item pages by ID.
type Resolver struct {
	client  *http.Client
	baseURL string
}

// New returns a Resolver hitting the public Steam community site.
func New() *Resolver {
	return &Resolver{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: pageURL,
	}
}

// Resolve fetches the workshop page for id and returns the page title with
// the workshop prefix stripped. A workshop error page means no such item
// exists.
func (r *Resolver) Resolve(id string) (string, error) {
	resp, err := r.client.Get(r.baseURL + id)
	if err != nil {
		return "", fmt.Errorf("fetching workshop page for %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("workshop page for %s: unexpected status %s", id, resp.Status)
	}

	title, err := pageTitle(resp.Body)
	if err != nil {
		return "", fmt.Errorf("workshop page for %s: %w", id, err)
	}
	if strings.Contains(title, errorTitle) {
		return "", fmt.Errorf("no workshop item with id %s", id)
	}
	return strings.TrimPrefix(title, titlePrefix), nil
}

// pageTitle extracts the first <title> text from an HTML document.
func pageTitle(body io.Reader) (string, error) {
	doc, err := html.Parse(body)
	if err != nil {
		return "", err
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if title == "" {
		return "", fmt.Errorf("document has no title")
	}
	return title, nil
}
