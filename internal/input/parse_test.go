// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonial-oss/cve-triage/internal/types"
)

func TestParse_JSONObject(t *testing.T) {
	data := []byte(`{
	  "items": [
	    {"cve_id": "CVE-2024-1234", "product": "examplelib", "version": "1.2.3", "asset": "web-01"},
	    {"cve_id": "CVE-2023-5678"}
	  ]
	}`)

	items, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, types.RequestItem{
		CVEID:   "CVE-2024-1234",
		Product: "examplelib",
		Version: "1.2.3",
		Asset:   "web-01",
	}, items[0])
	assert.Equal(t, types.RequestItem{CVEID: "CVE-2023-5678"}, items[1])
}

func TestParse_JSONArray(t *testing.T) {
	items, err := Parse([]byte(`[{"cve_id": "CVE-2024-1234"}, {"cve_id": "CVE-2023-5678"}]`))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "CVE-2024-1234", items[0].CVEID)
	assert.Equal(t, "CVE-2023-5678", items[1].CVEID)
}

func TestParse_JSONObjectWithoutItems(t *testing.T) {
	_, err := Parse([]byte(`{"rows": []}`))
	assert.Error(t, err)
}

func TestParse_CSV(t *testing.T) {
	data := []byte("cve_id,product,version,asset\nCVE-2024-1234,examplelib,1.2.3,web-01\nCVE-2023-5678,,,\n")

	items, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, types.RequestItem{
		CVEID:   "CVE-2024-1234",
		Product: "examplelib",
		Version: "1.2.3",
		Asset:   "web-01",
	}, items[0])
	assert.Equal(t, types.RequestItem{CVEID: "CVE-2023-5678"}, items[1])
}

func TestParse_CSVColumnOrderIndependent(t *testing.T) {
	data := []byte("asset,cve_id\nweb-01,CVE-2024-1234\n")

	items, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "CVE-2024-1234", items[0].CVEID)
	assert.Equal(t, "web-01", items[0].Asset)
}

func TestParse_CSVOnlyCVEColumn(t *testing.T) {
	items, err := Parse([]byte("cve_id\nCVE-2024-1234\n"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, types.RequestItem{CVEID: "CVE-2024-1234"}, items[0])
}

func TestParse_CSVMissingCVEColumn(t *testing.T) {
	_, err := Parse([]byte("product,version\nexamplelib,1.2.3\n"))
	assert.Error(t, err)
}

func TestParse_NormalizesCVEIDs(t *testing.T) {
	items, err := Parse([]byte(`[{"cve_id": "  cve-2024-1234 "}, {"cve_id": ""}]`))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "CVE-2024-1234", items[0].CVEID)
	// Empty IDs pass through; the pipeline degrades them to empty rows.
	assert.Empty(t, items[1].CVEID)
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)
	_, err = Parse([]byte("  \n\t"))
	assert.Error(t, err)
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"items": [`))
	assert.Error(t, err)
	_, err = Parse([]byte(`[{]`))
	assert.Error(t, err)
}
