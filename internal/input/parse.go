// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bonial-oss/cve-triage/internal/types"
)

// Parse decodes a batch of request items. The format is detected by
// probing the payload: a JSON object with an "items" array, a bare JSON
// array, or CSV with a cve_id header column. CVE IDs are trimmed and
// upper-cased; empty IDs pass through and later produce degraded rows.
func Parse(data []byte) ([]types.RequestItem, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	switch trimmed[0] {
	case '{':
		var req struct {
			Items []types.RequestItem `json:"items"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("parsing JSON input: %w", err)
		}
		if req.Items == nil {
			return nil, fmt.Errorf(`JSON object input requires an "items" array`)
		}
		return normalize(req.Items), nil

	case '[':
		var items []types.RequestItem
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("parsing JSON input: %w", err)
		}
		return normalize(items), nil

	default:
		return parseCSV(data)
	}
}

// parseCSV reads records with columns addressed by header name, so
// column order does not matter. Only cve_id is required.
func parseCSV(data []byte) ([]types.RequestItem, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["cve_id"]; !ok {
		return nil, fmt.Errorf("CSV input requires a cve_id column")
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var items []types.RequestItem
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV record: %w", err)
		}
		items = append(items, types.RequestItem{
			CVEID:   field(record, "cve_id"),
			Product: field(record, "product"),
			Version: field(record, "version"),
			Asset:   field(record, "asset"),
		})
	}

	return normalize(items), nil
}

func normalize(items []types.RequestItem) []types.RequestItem {
	for i := range items {
		items[i].CVEID = strings.ToUpper(strings.TrimSpace(items[i].CVEID))
	}
	return items
}
