// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonial-oss/cve-triage/internal/types"
)

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleRows(), TableConfig{}))
	out := buf.String()

	assert.Contains(t, out, "Enriched Vulnerabilities")
	assert.Contains(t, out, "Total: 2 (exploited in wild: 1)")
	assert.Contains(t, out, "CVE-2024-1234")
	assert.Contains(t, out, "CVE-2023-5678")
	assert.Contains(t, out, "1.378")
	assert.Contains(t, out, "0.455")
	// Non-terminal output carries no ANSI escapes.
	assert.NotContains(t, out, "\x1b[")
}

func TestWriteTable_SortByPriority(t *testing.T) {
	rows := []types.ResultRow{
		{CVEID: "CVE-2023-0001", PriorityScore: 0.1, ExploitedInWild: "No"},
		{CVEID: "CVE-2023-0002", PriorityScore: 0.9, ExploitedInWild: "No"},
		{CVEID: "CVE-2023-0003", PriorityScore: 0.5, ExploitedInWild: "No"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, rows, TableConfig{SortBy: "priority"}))
	out := buf.String()

	high := strings.Index(out, "CVE-2023-0002")
	mid := strings.Index(out, "CVE-2023-0003")
	low := strings.Index(out, "CVE-2023-0001")
	require.NotEqual(t, -1, high)
	require.NotEqual(t, -1, mid)
	require.NotEqual(t, -1, low)
	assert.Less(t, high, mid)
	assert.Less(t, mid, low)
}

func TestWriteTable_SortByCVE(t *testing.T) {
	rows := []types.ResultRow{
		{CVEID: "CVE-2024-0002", ExploitedInWild: "No"},
		{CVEID: "CVE-2024-0001", ExploitedInWild: "No"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, rows, TableConfig{SortBy: "cve"}))
	out := buf.String()

	assert.Less(t, strings.Index(out, "CVE-2024-0001"), strings.Index(out, "CVE-2024-0002"))
}

func TestWriteTable_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, nil, TableConfig{}))
	assert.Contains(t, buf.String(), "Total: 0 (exploited in wild: 0)")
}

func TestTruncateWords(t *testing.T) {
	assert.Equal(t, "short text", truncateWords("short text", 12))
	assert.Equal(t, "one two three...", truncateWords("one two three four", 3))
	assert.Empty(t, truncateWords("", 12))
}

func TestScoreValue(t *testing.T) {
	assert.Equal(t, 9.8, scoreValue("9.8"))
	assert.Zero(t, scoreValue(""))
	assert.Zero(t, scoreValue("n/a"))
}
