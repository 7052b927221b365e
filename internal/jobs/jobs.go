// Package jobs fetches live job listings from the listing provider and maps
// them into the widget's job shape.
package jobs

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/brillia/career-coach/internal/types"
)

const (
	defaultTimeout = 15 * time.Second
	resultsPerPage = 5

	// Listing freshness windows in days.
	latestWindow  = 1
	defaultWindow = 7
)

// listing is the provider's wire shape.
type listing struct {
	Title            string `json:"Title"`
	ShortDescription string `json:"ShortDescription"`
	SourceURL        string `json:"SourceURL"`
}

// UnavailableError indicates the listing provider answered with a non-2xx
// status or unusable body.
type UnavailableError struct {
	Status int
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("job search service is temporarily unavailable (status: %d)", e.Status)
}

// Client talks to the listing provider.
type Client struct {
	http *resty.Client
}

// NewClient creates a listing client for the provider at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout),
	}
}

// Search fetches listings for a title in a country. fetchLatest narrows the
// freshness window to one day. fallbackLocation fills in when a listing
// carries no location of its own.
func (c *Client) Search(ctx context.Context, title, country, fallbackLocation string, fetchLatest bool) ([]types.Job, error) {
	window := defaultWindow
	if fetchLatest {
		window = latestWindow
	}

	var listings []listing
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"title":          title,
			"country":        country,
			"maxDaysOld":     strconv.Itoa(window),
			"resultsPerPage": strconv.Itoa(resultsPerPage),
			// Cache-buster, mirrors what job boards expect from widgets.
			"_t": strconv.FormatInt(time.Now().UnixMilli(), 10),
		}).
		SetResult(&listings).
		Get("/Jobs/FetchAndSaveJobs")
	if err != nil {
		return nil, fmt.Errorf("failed to reach job search service: %w", err)
	}
	if resp.IsError() {
		return nil, &UnavailableError{Status: resp.StatusCode()}
	}

	jobs := make([]types.Job, 0, len(listings))
	for _, l := range listings {
		jobs = append(jobs, mapListing(l, fallbackLocation))
	}
	return jobs, nil
}

// mapListing converts a provider listing. ShortDescription packs location and
// company as "location | company".
func mapListing(l listing, fallbackLocation string) types.Job {
	location := fallbackLocation
	company := "Company Unknown"

	parts := strings.Split(l.ShortDescription, "|")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) != "" {
		location = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		company = strings.TrimSpace(parts[1])
	}

	return types.Job{
		Title:    l.Title,
		Company:  company,
		Location: location,
		URI:      l.SourceURL,
	}
}
