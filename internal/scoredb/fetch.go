package scoredb

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Published locations of the two RWMSDB documents.
const (
	CategoriesURL = "https://api.bitbucket.org/2.0/repositories/shakeyourbunny/rwmsdb/src/master/rwms_db_categories.json"
	DatabaseURL   = "https://api.bitbucket.org/2.0/repositories/shakeyourbunny/rwmsdb/src/master/rwmsdb.json"
)

const (
	userAgent    = "rwsort (+https://github.com/rwmods/rwsort)"
	fetchTimeout = 60 * time.Second
)

var client = &http.Client{Timeout: fetchTimeout}

// rawDatabase mirrors the rwmsdb.json document.
type rawDatabase struct {
	Version     int               `json:"version"`
	Timestamp   any               `json:"timestamp"`
	DB          map[string]string `json:"db"`
	Contributor map[string]int    `json:"contributor"`
}

// Fetch downloads both RWMSDB documents and assembles the database for this
// run. Any transport or decoding failure is fatal: the sort cannot proceed
// without a scoring source.
func Fetch(categoriesURL, databaseURL string) (*Database, error) {
	// The categories document maps category name → [score, description].
	var cats map[string][]any
	if err := fetchJSON(categoriesURL, &cats); err != nil {
		return nil, fmt.Errorf("loading category scores: %w", err)
	}

	var raw rawDatabase
	if err := fetchJSON(databaseURL, &raw); err != nil {
		return nil, fmt.Errorf("loading mod database: %w", err)
	}
	if len(raw.DB) == 0 {
		return nil, fmt.Errorf("mod database at %s is empty", databaseURL)
	}

	scores := make(map[string]float64, len(cats))
	for name, fields := range cats {
		if len(fields) == 0 {
			return nil, fmt.Errorf("category %q has no score entry", name)
		}
		score, ok := fields[0].(float64)
		if !ok {
			return nil, fmt.Errorf("category %q has a non-numeric score %v", name, fields[0])
		}
		scores[name] = score
	}

	return &Database{
		Version:      raw.Version,
		Timestamp:    fmt.Sprint(raw.Timestamp),
		Scores:       scores,
		Categories:   raw.DB,
		Contributors: raw.Contributor,
	}, nil
}

func fetchJSON(url string, v any) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s: %w", url, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}
