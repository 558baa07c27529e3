// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bonial-oss/cve-triage/internal/types"
)

// jsonEnvelope wraps the rows so the payload matches the ticketing
// import format.
type jsonEnvelope struct {
	Rows []types.ResultRow `json:"rows"`
}

// WriteJSON writes the enrichment rows as an indented JSON object with
// a top-level "rows" array. HTML escaping is disabled so reference URLs
// stay readable.
func WriteJSON(w io.Writer, rows []types.ResultRow) error {
	if rows == nil {
		rows = []types.ResultRow{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(jsonEnvelope{Rows: rows}); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}
