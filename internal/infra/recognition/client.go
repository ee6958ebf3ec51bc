// Package recognition calls the external image recognition service. The
// service is a collaborator with a binary outcome: the submitted photo either
// matches the campaign criteria or it does not.
package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"voucher-campaign/internal/pkg/config"
	"voucher-campaign/internal/pkg/errs"
)

type Client struct {
	httpClient *http.Client
	endpoint   string
}

func NewClient(cfg config.CampaignConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RecognitionTimeout},
		endpoint:   cfg.RecognitionURL,
	}
}

type recognitionResponse struct {
	Match bool `json:"match"`
}

// Verify posts the raw image to the recognition endpoint and returns whether
// it matched. Transport and non-200 failures are errors, not a negative
// verdict; the caller must not treat them as a failed verification.
func (c *Client) Verify(ctx context.Context, image []byte) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(image))
	if err != nil {
		return false, errs.Wrap(err, "failed to build recognition request")
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, errs.Wrap(err, "recognition request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, errs.New("recognition service returned status " + resp.Status)
	}

	var result recognitionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, errs.Wrap(err, "failed to decode recognition response")
	}

	return result.Match, nil
}
