// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package types

// RequestItem is a single CVE to enrich, optionally annotated with the
// product, version, and asset it was detected on. Items are immutable
// once parsed.
type RequestItem struct {
	CVEID   string `json:"cve_id"`
	Product string `json:"product,omitempty"`
	Version string `json:"version,omitempty"`
	Asset   string `json:"asset,omitempty"`
}

// VulnRecord holds the descriptive and severity data fetched from the
// vulnerability database for one CVE. A failed or empty lookup is the
// zero value.
type VulnRecord struct {
	Summary    string
	CVSS       *float64
	References []string
	PatchURL   string
}

// ResultRow is one ticket-ready output record. Field names match the
// downstream ticketing import format; CVSS_Base and EPSS are strings so
// an unknown score renders as empty rather than zero.
type ResultRow struct {
	CVEID            string  `json:"CVE_ID"`
	CVSSBase         string  `json:"CVSS_Base"`
	EPSS             string  `json:"EPSS"`
	ExploitedInWild  string  `json:"Exploited_in_Wild"`
	AffectedProduct  string  `json:"Affected_Product"`
	Version          string  `json:"Version"`
	DetectedOnAsset  string  `json:"Detected_On_Asset"`
	DescriptionShort string  `json:"Description_Short"`
	RemediationSteps string  `json:"Remediation_Steps"`
	PatchURL         string  `json:"Patch_URL"`
	Workaround       string  `json:"Workaround"`
	References       string  `json:"References"`
	OwnerSuggested   string  `json:"Owner_Suggested"`
	PriorityScore    float64 `json:"Priority_Score"`
	TicketTitle      string  `json:"Suggested_Ticket_Title"`
	TicketBody       string  `json:"Suggested_Ticket_Body"`
}

// KEVEntry is a single entry in the CISA KEV catalog JSON. Only the CVE
// identifier is read; the registry keeps membership, not metadata.
type KEVEntry struct {
	CVEID string `json:"cveID"`
}

// KEVCatalog is the CISA KEV catalog JSON structure.
type KEVCatalog struct {
	CatalogVersion  string     `json:"catalogVersion"`
	DateReleased    string     `json:"dateReleased"`
	Count           int        `json:"count"`
	Vulnerabilities []KEVEntry `json:"vulnerabilities"`
}
