// Package update checks the release repository for a newer rwsort version.
package update

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// VersionURL is the published VERSION file of the release repository.
const VersionURL = "https://api.bitbucket.org/2.0/repositories/shakeyourbunny/rwms/src/master/VERSION"

var client = &http.Client{Timeout: 30 * time.Second}

// Latest fetches the most recently released version string.
func Latest(url string) (string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return "", fmt.Errorf("fetching version: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching version: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", fmt.Errorf("reading version: %w", err)
	}
	return strings.TrimSpace(string(body)), nil
}

// Available reports whether a version other than current has been released.
// The comparison is exact string inequality, matching how releases are cut.
func Available(url, current string) (bool, string, error) {
	if current == "" {
		return false, "", nil
	}
	latest, err := Latest(url)
	if err != nil {
		return false, "", err
	}
	return latest != current, latest, nil
}
