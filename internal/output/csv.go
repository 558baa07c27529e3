// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/bonial-oss/cve-triage/internal/types"
)

// csvHeader lists the output columns in the ticketing import order.
var csvHeader = []string{
	"CVE_ID",
	"CVSS_Base",
	"EPSS",
	"Exploited_in_Wild",
	"Affected_Product",
	"Version",
	"Detected_On_Asset",
	"Description_Short",
	"Remediation_Steps",
	"Patch_URL",
	"Workaround",
	"References",
	"Owner_Suggested",
	"Priority_Score",
	"Suggested_Ticket_Title",
	"Suggested_Ticket_Body",
}

// WriteCSV writes the enrichment rows as CSV with a header row.
func WriteCSV(w io.Writer, rows []types.ResultRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.CVEID,
			row.CVSSBase,
			row.EPSS,
			row.ExploitedInWild,
			row.AffectedProduct,
			row.Version,
			row.DetectedOnAsset,
			row.DescriptionShort,
			row.RemediationSteps,
			row.PatchURL,
			row.Workaround,
			row.References,
			row.OwnerSuggested,
			strconv.FormatFloat(row.PriorityScore, 'f', -1, 64),
			row.TicketTitle,
			row.TicketBody,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV output: %w", err)
	}
	return nil
}
