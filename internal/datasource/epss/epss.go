// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package epss

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

const (
	baseURL        = "https://api.first.org/data/v1/epss"
	requestTimeout = 15 * time.Second
)

type apiResponse struct {
	Data []struct {
		CVE  string `json:"cve"`
		EPSS string `json:"epss"`
	} `json:"data"`
}

// Client fetches exploit-prediction scores from the FIRST EPSS API.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a client with the default timeout.
func NewClient() *Client {
	c := cleanhttp.DefaultClient()
	c.Timeout = requestTimeout
	return &Client{httpClient: c}
}

// Lookup returns the EPSS probability for the given CVE ID, or nil when
// the feed has no score for it. "No score" is distinct from zero.
func (c *Client) Lookup(cveID string) (*float64, error) {
	params := url.Values{}
	params.Set("cve", cveID)

	req, err := http.NewRequest(http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("epss request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("epss request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("epss api: status %s", resp.Status)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("epss decode: %w", err)
	}

	if len(body.Data) == 0 {
		return nil, nil
	}

	score, err := strconv.ParseFloat(body.Data[0].EPSS, 64)
	if err != nil {
		return nil, fmt.Errorf("epss parse score for %s: %w", cveID, err)
	}
	return &score, nil
}
