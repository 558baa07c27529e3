// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package enricher

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bonial-oss/cve-triage/internal/types"
)

// RemediationSteps is the fixed remediation recommendation attached to
// every row.
const RemediationSteps = "Apply vendor patch/update per advisory; if delayed, add compensating controls (WAF, restrict exposure, monitor)."

// exploitedWorkaround is emitted only for known-exploited items.
const exploitedWorkaround = "Restrict access/virtual patching; enhanced monitoring"

const (
	maxReferences = 6
	defaultAsset  = "target asset"
)

// Workaround returns the compensating-control text for known-exploited
// items, empty otherwise.
func Workaround(exploited bool) string {
	if exploited {
		return exploitedWorkaround
	}
	return ""
}

// JoinReferences joins the first 6 reference URLs with " | ".
func JoinReferences(refs []string) string {
	if len(refs) > maxReferences {
		refs = refs[:maxReferences]
	}
	return strings.Join(refs, " | ")
}

// TicketTitle formats the suggested ticket title for an item.
func TicketTitle(item types.RequestItem) string {
	asset := item.Asset
	if asset == "" {
		asset = defaultAsset
	}
	return fmt.Sprintf("[%s] Remediate on %s", item.CVEID, asset)
}

// TicketBody formats the multi-line suggested ticket body. cvssText is
// the rendered CVSS score (empty when unknown); epss is the defaulted
// numeric probability (0 when unknown); refs is the joined reference
// list.
func TicketBody(item types.RequestItem, rec types.VulnRecord, cvssText string, epss float64, exploited bool, refs string) string {
	return fmt.Sprintf("CVE: %s\nCVSS: %s | EPSS: %s | KEV: %s\nSummary: %s\nRemediation: Apply vendor patch/update.\nPatch: %s\nRefs: %s",
		item.CVEID,
		cvssText,
		strconv.FormatFloat(epss, 'f', -1, 64),
		yesNo(exploited),
		rec.Summary,
		rec.PatchURL,
		refs,
	)
}
