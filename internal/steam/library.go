package steam

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type libraryResponse struct {
	Error string `xml:"error"`
	Games []struct {
		AppID string `xml:"appID"`
		Name  string `xml:"name"`
	} `xml:"games>game"`
}

// Library fetches the account's owned games from the community profile XML.
// The decoder unwraps the CDATA wrappers the endpoint puts around names.
// Order follows the source document.
func (c *Client) Library(ctx context.Context) ([]App, error) {
	if c.steamID == "" {
		return nil, errors.New("library fetch requires steam.steam_id")
	}

	endpoint := fmt.Sprintf("%s/id/%s/games?tab=all&xml=1", c.communityBaseURL, c.steamID)
	resp, latency, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch library (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("library returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload libraryResponse
	if err := xml.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode library response: %w", err)
	}
	if msg := strings.TrimSpace(payload.Error); msg != "" {
		return nil, fmt.Errorf("library fetch failed: %s", msg)
	}

	apps := make([]App, 0, len(payload.Games))
	for _, entry := range payload.Games {
		id := strings.TrimSpace(entry.AppID)
		if id == "" {
			continue
		}
		apps = append(apps, App{ID: id, Name: strings.TrimSpace(entry.Name)})
	}
	return apps, nil
}
