package steam

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

type appListResponse struct {
	Apps []struct {
		AppID int64  `xml:"appid"`
		Name  string `xml:"name"`
	} `xml:"apps>app"`
}

// AppList fetches the full software/DLC catalog from the Web API. Games are
// excluded by request parameters; the result is the exclusion set for
// enrichment, not the work list.
func (c *Client) AppList(ctx context.Context) ([]App, error) {
	if c.apiKey == "" {
		return nil, errors.New("app list requires steam.api_key")
	}

	endpoint, err := url.Parse(c.webAPIBaseURL + "/IStoreService/GetAppList/v1/")
	if err != nil {
		return nil, fmt.Errorf("parse app list url: %w", err)
	}
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("format", "xml")
	params.Set("include_games", "false")
	params.Set("include_dlc", "true")
	params.Set("include_software", "true")
	params.Set("include_videos", "false")
	params.Set("include_hardware", "false")
	params.Set("max_results", "500000")
	endpoint.RawQuery = params.Encode()

	resp, latency, err := c.get(ctx, endpoint.String())
	if err != nil {
		return nil, fmt.Errorf("fetch app list (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("app list returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload appListResponse
	if err := xml.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode app list response: %w", err)
	}

	apps := make([]App, 0, len(payload.Apps))
	for _, entry := range payload.Apps {
		apps = append(apps, App{
			ID:   strconv.FormatInt(entry.AppID, 10),
			Name: entry.Name,
		})
	}
	return apps, nil
}
