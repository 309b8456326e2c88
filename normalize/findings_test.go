// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeDoc(t *testing.T, raw string) any {
	t.Helper()
	var doc any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestExtractSarifFindings(t *testing.T) {
	t.Run("flattens results across all runs", func(t *testing.T) {
		doc := decodeDoc(t, `{
			"runs": [
				{"results": [
					{"ruleId": "G101", "level": "error", "locations": [
						{"physicalLocation": {"artifactLocation": {"uri": "main.go"}}}
					]},
					{"ruleId": "G204", "level": "note", "locations": [
						{"physicalLocation": {"artifactLocation": {"uri": "cmd/run.go"}}}
					]}
				]},
				{"results": [
					{"ruleId": "G304", "level": "warning"}
				]}
			]
		}`)

		findings := ExtractFindings(doc, FormatSarif)
		require.Len(t, findings, 3)
		assert.Equal(t, Finding{FilePath: "main.go", RuleID: "G101", RawSeverity: "error"}, findings[0])
		assert.Equal(t, Finding{FilePath: "cmd/run.go", RuleID: "G204", RawSeverity: "note"}, findings[1])
		// no locations at all still yields a finding without a file path
		assert.Equal(t, Finding{RuleID: "G304", RawSeverity: "warning"}, findings[2])
	})

	t.Run("missing fields degrade to empty strings", func(t *testing.T) {
		doc := decodeDoc(t, `{"runs": [{"results": [{}]}]}`)

		findings := ExtractFindings(doc, FormatSarif)
		require.Len(t, findings, 1)
		assert.Equal(t, Finding{}, findings[0])
	})

	t.Run("non-string level is treated as empty", func(t *testing.T) {
		doc := decodeDoc(t, `{"runs": [{"results": [{"ruleId": "R1", "level": 3}]}]}`)

		findings := ExtractFindings(doc, FormatSarif)
		require.Len(t, findings, 1)
		assert.Equal(t, "", findings[0].RawSeverity)
		assert.Equal(t, "R1", findings[0].RuleID)
	})

	t.Run("malformed result entries still count", func(t *testing.T) {
		doc := decodeDoc(t, `{"runs": [{"results": ["not-an-object", {"ruleId": "R1"}]}]}`)

		findings := ExtractFindings(doc, FormatSarif)
		require.Len(t, findings, 2)
	})

	t.Run("empty runs yield nothing", func(t *testing.T) {
		assert.Empty(t, ExtractFindings(decodeDoc(t, `{"runs": []}`), FormatSarif))
	})
}

func TestExtractSemgrepFindings(t *testing.T) {
	t.Run("takes results directly", func(t *testing.T) {
		doc := decodeDoc(t, `{
			"results": [
				{"path": "app/db.py", "check_id": "python.lang.security.audit", "extra": {"severity": "ERROR"}},
				{"path": "app/db.py", "check_id": "python.sqlalchemy.security"}
			]
		}`)

		findings := ExtractFindings(doc, FormatSemgrepJSON)
		require.Len(t, findings, 2)
		assert.Equal(t, Finding{FilePath: "app/db.py", RuleID: "python.lang.security.audit", RawSeverity: "ERROR"}, findings[0])
		// severity defaults to info when extra.severity is absent
		assert.Equal(t, "info", findings[1].RawSeverity)
	})

	t.Run("empty results yield an empty sequence", func(t *testing.T) {
		findings := ExtractFindings(decodeDoc(t, `{"results": []}`), FormatSemgrepJSON)
		assert.Empty(t, findings)
	})

	t.Run("malformed entries keep their default severity", func(t *testing.T) {
		doc := decodeDoc(t, `{"results": [42]}`)

		findings := ExtractFindings(doc, FormatSemgrepJSON)
		require.Len(t, findings, 1)
		assert.Equal(t, "info", findings[0].RawSeverity)
	})
}

func TestExtractUnknownFormat(t *testing.T) {
	assert.Empty(t, ExtractFindings(decodeDoc(t, `{"foo": "bar"}`), FormatUnknown))
	assert.Empty(t, ExtractFindings(nil, FormatUnknown))
	assert.Empty(t, ExtractFindings("plain string", FormatSarif))
}
