// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package enricher

import (
	"strconv"
	"sync"

	"github.com/gammazero/workerpool"

	"github.com/bonial-oss/cve-triage/internal/types"
)

// VulnSource provides descriptive and severity data per CVE.
type VulnSource interface {
	Lookup(cveID string) (types.VulnRecord, error)
}

// ScoreSource provides an exploit-prediction probability per CVE, nil
// when the feed has no score.
type ScoreSource interface {
	Lookup(cveID string) (*float64, error)
}

// ExploitedRegistry answers known-exploited membership queries.
type ExploitedRegistry interface {
	IsKnownExploited(cveID string) bool
}

// Pipeline enriches request items into ticket-ready rows. Any source
// may be nil (disabled); its fields then degrade to empty values.
type Pipeline struct {
	vulns     VulnSource
	scores    ScoreSource
	exploited ExploitedRegistry
	workers   int
}

// New creates a Pipeline processing up to workers items at a time.
func New(vulns VulnSource, scores ScoreSource, exploited ExploitedRegistry, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		vulns:     vulns,
		scores:    scores,
		exploited: exploited,
		workers:   workers,
	}
}

// Enrich produces exactly one row per input item, in input order. Items
// are processed on a bounded worker pool; each writes only its own slot
// of the result slice, so order is preserved by construction. Lookup
// failures degrade the affected fields, never the batch.
func (p *Pipeline) Enrich(items []types.RequestItem) []types.ResultRow {
	rows := make([]types.ResultRow, len(items))

	wp := workerpool.New(p.workers)
	for i, item := range items {
		i, item := i, item // per-iteration copies; required pre-Go 1.22
		wp.Submit(func() {
			rows[i] = p.enrichOne(item)
		})
	}
	wp.StopWait()

	return rows
}

// enrichOne runs the three lookups for a single item and merges the
// results. The vulnerability and exploit-score lookups are independent
// network calls and run concurrently.
func (p *Pipeline) enrichOne(item types.RequestItem) types.ResultRow {
	var (
		rec   types.VulnRecord
		score *float64
		wg    sync.WaitGroup
	)

	if p.vulns != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r, err := p.vulns.Lookup(item.CVEID); err == nil {
				rec = r
			}
		}()
	}

	if p.scores != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s, err := p.scores.Lookup(item.CVEID); err == nil {
				score = s
			}
		}()
	}

	exploited := false
	if p.exploited != nil {
		exploited = p.exploited.IsKnownExploited(item.CVEID)
	}

	wg.Wait()

	// Missing scores count as 0 toward the priority but render empty.
	var cvss float64
	var cvssText string
	if rec.CVSS != nil {
		cvss = *rec.CVSS
		cvssText = strconv.FormatFloat(cvss, 'f', -1, 64)
	}

	var epss float64
	var epssText string
	if score != nil {
		epss = *score
		epssText = strconv.FormatFloat(round(epss, 4), 'f', -1, 64)
	}

	refs := JoinReferences(rec.References)

	return types.ResultRow{
		CVEID:            item.CVEID,
		CVSSBase:         cvssText,
		EPSS:             epssText,
		ExploitedInWild:  yesNo(exploited),
		AffectedProduct:  item.Product,
		Version:          item.Version,
		DetectedOnAsset:  item.Asset,
		DescriptionShort: rec.Summary,
		RemediationSteps: RemediationSteps,
		PatchURL:         rec.PatchURL,
		Workaround:       Workaround(exploited),
		References:       refs,
		PriorityScore:    Priority(cvss, epss, exploited),
		TicketTitle:      TicketTitle(item),
		TicketBody:       TicketBody(item, rec, cvssText, epss, exploited, refs),
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
