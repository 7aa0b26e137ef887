package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// AppDetails is the classification-relevant subset of an appdetails record.
type AppDetails struct {
	Name      string
	IsFree    bool
	DRMNotice string
	Windows   bool
	Mac       bool
	Linux     bool
}

type appDetailsEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Name      string `json:"name"`
		IsFree    bool   `json:"is_free"`
		DRMNotice string `json:"drm_notice"`
		Platforms struct {
			Windows bool `json:"windows"`
			Mac     bool `json:"mac"`
			Linux   bool `json:"linux"`
		} `json:"platforms"`
	} `json:"data"`
}

// Details fetches the detail record for one identifier. A response that
// omits the identifier or reports success=false yields (nil, nil); callers
// treat that as the Unknown classification, not an error.
func (c *Client) Details(ctx context.Context, id string) (*AppDetails, error) {
	if c.detailTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.detailTimeout)
		defer cancel()
	}

	endpoint := fmt.Sprintf("%s/api/appdetails?appids=%s", c.storeBaseURL, url.QueryEscape(id))
	resp, latency, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch appdetails %s (latency=%v): %w", id, latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("appdetails %s returned %d (latency=%v)", id, resp.StatusCode, latency)
	}

	var payload map[string]appDetailsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode appdetails %s: %w", id, err)
	}

	envelope, ok := payload[id]
	if !ok || !envelope.Success {
		return nil, nil
	}

	return &AppDetails{
		Name:      envelope.Data.Name,
		IsFree:    envelope.Data.IsFree,
		DRMNotice: envelope.Data.DRMNotice,
		Windows:   envelope.Data.Platforms.Windows,
		Mac:       envelope.Data.Platforms.Mac,
		Linux:     envelope.Data.Platforms.Linux,
	}, nil
}
