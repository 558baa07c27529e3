// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package kev

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/bonial-oss/cve-triage/internal/types"
)

const (
	primaryURL      = "https://www.cisa.gov/sites/default/files/feeds/known_exploited_vulnerabilities.json"
	fallbackURL     = "https://raw.githubusercontent.com/cisagov/kev-data/main/known_exploited_vulnerabilities.json"
	requestTimeout  = 20 * time.Second
	maxResponseSize = 50 * 1024 * 1024 // 50 MB
)

// Registry answers membership queries against the CISA Known Exploited
// Vulnerabilities catalog. The catalog is fetched at most once per
// process; after a failed fetch the registry stays empty for the rest
// of the process lifetime (snapshot semantics, no retry, no TTL).
type Registry struct {
	httpClient *http.Client
	once       sync.Once
	ids        map[string]struct{}
}

// NewRegistry returns an unloaded registry. The catalog is fetched
// lazily on the first membership query.
func NewRegistry() *Registry {
	c := cleanhttp.DefaultClient()
	c.Timeout = requestTimeout
	return &Registry{httpClient: c}
}

// IsKnownExploited reports whether the given CVE ID is in the KEV
// catalog snapshot. Safe for concurrent use; the first caller triggers
// the one-time load.
func (r *Registry) IsKnownExploited(cveID string) bool {
	r.ensureLoaded()
	_, ok := r.ids[cveID]
	return ok
}

// Size returns the number of catalog entries in the snapshot, loading
// it if needed.
func (r *Registry) Size() int {
	r.ensureLoaded()
	return len(r.ids)
}

// ensureLoaded fetches and parses the catalog exactly once. On failure
// the snapshot is the empty set and stays that way.
func (r *Registry) ensureLoaded() {
	r.once.Do(func() {
		r.ids = make(map[string]struct{})

		data, err := r.download()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to download KEV catalog (%v), exploited-in-wild detection disabled\n", err)
			return
		}

		var catalog types.KEVCatalog
		if err := json.Unmarshal(data, &catalog); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to parse KEV catalog (%v), exploited-in-wild detection disabled\n", err)
			return
		}

		for _, vuln := range catalog.Vulnerabilities {
			r.ids[vuln.CVEID] = struct{}{}
		}
	})
}

// download fetches the KEV catalog JSON from the primary URL, falling
// back to the GitHub mirror.
func (r *Registry) download() ([]byte, error) {
	data, err := r.downloadFrom(primaryURL)
	if err == nil {
		return data, nil
	}

	data, err2 := r.downloadFrom(fallbackURL)
	if err2 == nil {
		return data, nil
	}

	return nil, fmt.Errorf("primary (%s): %w; fallback (%s): %v", primaryURL, err, fallbackURL, err2)
}

func (r *Registry) downloadFrom(url string) ([]byte, error) {
	resp, err := r.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return data, nil
}
