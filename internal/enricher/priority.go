// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package enricher

import "math"

const (
	cvssWeight     = 0.5
	epssWeight     = 0.4
	exploitedBonus = 0.5
)

// Priority computes the composite priority score from a CVSS base score
// (0-10), an EPSS probability (0-1), and the known-exploited flag,
// rounded to 3 decimal places. The weighted sum is not clamped: an item
// maxing out all three inputs scores 1.4. Downstream consumers sort by
// relative order, so the overshoot is preserved as-is.
func Priority(cvss, epss float64, exploited bool) float64 {
	score := (cvss/10.0)*cvssWeight + epss*epssWeight
	if exploited {
		score += exploitedBonus
	}
	return round(score, 3)
}

// round rounds x to the given number of decimal places.
func round(x float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(x*p) / p
}
