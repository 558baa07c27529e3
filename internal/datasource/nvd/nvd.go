// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package nvd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/bonial-oss/cve-triage/internal/types"
)

const (
	baseURL        = "https://services.nvd.nist.gov/rest/json/cves/2.0"
	requestTimeout = 20 * time.Second
	maxSummaryLen  = 600
)

// patchKeywords mark a reference URL as pointing at an advisory or fix.
// Matching is case-sensitive, as the upstream URLs use lowercase paths.
var patchKeywords = []string{"advis", "patch", "security"}

type metricGroup struct {
	CVSSData struct {
		BaseScore float64 `json:"baseScore"`
	} `json:"cvssData"`
}

type cveMetrics struct {
	CVSSMetricV31 []metricGroup `json:"cvssMetricV31"`
	CVSSMetricV30 []metricGroup `json:"cvssMetricV30"`
	CVSSMetricV2  []metricGroup `json:"cvssMetricV2"`
}

type apiResponse struct {
	Vulnerabilities []struct {
		CVE struct {
			Descriptions []struct {
				Lang  string `json:"lang"`
				Value string `json:"value"`
			} `json:"descriptions"`
			Metrics    cveMetrics `json:"metrics"`
			References []struct {
				URL string `json:"url"`
			} `json:"references"`
		} `json:"cve"`
	} `json:"vulnerabilities"`
}

// Client fetches CVE data from the NVD 2.0 API. Optional APIKey enables
// higher rate limits.
type Client struct {
	httpClient *http.Client
	apiKey     string
}

// NewClient returns a client. apiKey is optional.
func NewClient(apiKey string) *Client {
	c := cleanhttp.DefaultClient()
	c.Timeout = requestTimeout
	return &Client{httpClient: c, apiKey: apiKey}
}

// Lookup returns the vulnerability record for the given CVE ID. An ID
// unknown to the database yields the zero record with a nil error;
// network and decode failures return an error, which callers degrade to
// the zero record as well.
func (c *Client) Lookup(cveID string) (types.VulnRecord, error) {
	req, err := http.NewRequest(http.MethodGet, baseURL+"?cveId="+url.QueryEscape(cveID), nil)
	if err != nil {
		return types.VulnRecord{}, fmt.Errorf("nvd request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("apiKey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.VulnRecord{}, fmt.Errorf("nvd request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.VulnRecord{}, fmt.Errorf("nvd api: status %s", resp.Status)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return types.VulnRecord{}, fmt.Errorf("nvd decode: %w", err)
	}

	if len(body.Vulnerabilities) == 0 {
		return types.VulnRecord{}, nil
	}

	cve := body.Vulnerabilities[0].CVE

	var rec types.VulnRecord
	if len(cve.Descriptions) > 0 {
		rec.Summary = truncate(cve.Descriptions[0].Value, maxSummaryLen)
	}
	rec.CVSS = baseScore(cve.Metrics)
	for _, ref := range cve.References {
		rec.References = append(rec.References, ref.URL)
	}
	rec.PatchURL = firstPatchURL(rec.References)

	return rec, nil
}

// baseScore returns the base score of the first metric group present,
// preferring CVSS v3.1 over v3.0 over v2. Nil when no group is present.
func baseScore(m cveMetrics) *float64 {
	for _, group := range [][]metricGroup{m.CVSSMetricV31, m.CVSSMetricV30, m.CVSSMetricV2} {
		if len(group) > 0 {
			score := group[0].CVSSData.BaseScore
			return &score
		}
	}
	return nil
}

// firstPatchURL returns the first reference URL, in source order,
// containing one of the patch keywords.
func firstPatchURL(refs []string) string {
	for _, u := range refs {
		for _, kw := range patchKeywords {
			if strings.Contains(u, kw) {
				return u
			}
		}
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
