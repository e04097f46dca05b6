// Package prayer looks up daily prayer times from the aladhan.com API. It
// is a collaborator consumed through a narrow interface: any failure maps
// to a nil result, never an error, and the UI renders a placeholder.
package prayer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/Anasnah/Adkari-fin4/internal/domain"
)

const defaultBaseURL = "https://api.aladhan.com"

// Client fetches prayer times by city and country.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a client with a 5 second timeout; hanging requests must not
// stall the caller.
func New(log zerolog.Logger) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		log:        log,
	}
}

// Lookup returns today's times for a city, or nil on any failure.
func (c *Client) Lookup(ctx context.Context, country, city string) *domain.PrayerTimes {
	if country == "" || city == "" {
		return nil
	}

	now := time.Now()
	// The API expects DD-MM-YYYY without zero padding.
	dateStr := fmt.Sprintf("%d-%d-%d", now.Day(), int(now.Month()), now.Year())
	reqURL := fmt.Sprintf("%s/v1/timingsByCity/%s?city=%s&country=%s&method=4",
		c.baseURL, dateStr, url.QueryEscape(city), url.QueryEscape(country))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Msg("prayer times fetch failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	timings := gjson.GetBytes(body, "data.timings")
	if !timings.Exists() {
		return nil
	}
	return &domain.PrayerTimes{
		Fajr:    timings.Get("Fajr").String(),
		Sunrise: timings.Get("Sunrise").String(),
		Dhuhr:   timings.Get("Dhuhr").String(),
		Asr:     timings.Get("Asr").String(),
		Maghrib: timings.Get("Maghrib").String(),
		Isha:    timings.Get("Isha").String(),
		Date:    gjson.GetBytes(body, "data.date.readable").String(),
	}
}
