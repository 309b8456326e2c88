// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	t.Run("counts findings, distinct files and distinct rules", func(t *testing.T) {
		metrics := Summarize([]Finding{
			{FilePath: "a.go", RuleID: "R1", RawSeverity: "error"},
			{FilePath: "a.go", RuleID: "R2", RawSeverity: "note"},
		})

		assert.Equal(t, 2, metrics.TotalFindings)
		assert.Equal(t, 1, metrics.TotalFiles)
		assert.Equal(t, 2, metrics.TotalRules)
		assert.Equal(t, 1, metrics.SeverityHigh)
		assert.Equal(t, 1, metrics.SeverityLow)
		assert.Equal(t, 0, metrics.SeverityCritical)
		assert.Equal(t, 0, metrics.SeverityMedium)
		assert.Equal(t, 0, metrics.SeverityInfo)
	})

	t.Run("empty values never count as distinct", func(t *testing.T) {
		metrics := Summarize([]Finding{
			{RawSeverity: "high"},
			{FilePath: "b.go", RawSeverity: ""},
		})

		assert.Equal(t, 2, metrics.TotalFindings)
		assert.Equal(t, 1, metrics.TotalFiles)
		assert.Equal(t, 0, metrics.TotalRules)
		// empty severity falls through to info
		assert.Equal(t, 1, metrics.SeverityInfo)
	})

	t.Run("severity counters always sum to total findings", func(t *testing.T) {
		findings := []Finding{
			{RawSeverity: "critical"},
			{RawSeverity: "error"},
			{RawSeverity: "warning"},
			{RawSeverity: "low"},
			{RawSeverity: "whatever"},
			{RawSeverity: ""},
		}
		metrics := Summarize(findings)

		sum := metrics.SeverityCritical + metrics.SeverityHigh + metrics.SeverityMedium + metrics.SeverityLow + metrics.SeverityInfo
		assert.Equal(t, metrics.TotalFindings, sum)
		assert.Equal(t, len(findings), metrics.TotalFindings)
	})

	t.Run("distinct counts never exceed total findings", func(t *testing.T) {
		metrics := Summarize([]Finding{
			{FilePath: "a", RuleID: "r"},
			{FilePath: "b", RuleID: "r"},
			{FilePath: "a", RuleID: "s"},
		})

		assert.LessOrEqual(t, metrics.TotalFiles, metrics.TotalFindings)
		assert.LessOrEqual(t, metrics.TotalRules, metrics.TotalFindings)
	})

	t.Run("no findings yield all zeros", func(t *testing.T) {
		assert.Equal(t, SummaryMetrics{}, Summarize(nil))
	})
}

func TestSummarizeDocument(t *testing.T) {
	t.Run("sarif document with two results", func(t *testing.T) {
		doc := decodeDoc(t, `{
			"runs": [{"results": [
				{"ruleId": "R1", "level": "error", "locations": [
					{"physicalLocation": {"artifactLocation": {"uri": "a.go"}}}
				]},
				{"ruleId": "R2", "level": "note", "locations": [
					{"physicalLocation": {"artifactLocation": {"uri": "a.go"}}}
				]}
			]}]
		}`)

		format, metrics := SummarizeDocument(doc)
		require.Equal(t, FormatSarif, format)
		assert.Equal(t, SummaryMetrics{
			TotalFindings: 2,
			TotalFiles:    1,
			TotalRules:    2,
			SeverityHigh:  1,
			SeverityLow:   1,
		}, metrics)
	})

	t.Run("semgrep document without results stays all zero", func(t *testing.T) {
		format, metrics := SummarizeDocument(decodeDoc(t, `{"results": []}`))
		assert.Equal(t, FormatSemgrepJSON, format)
		assert.Equal(t, SummaryMetrics{}, metrics)
	})

	t.Run("unclassifiable document yields unknown and zero counts", func(t *testing.T) {
		format, metrics := SummarizeDocument(decodeDoc(t, `{"neither": true}`))
		assert.Equal(t, FormatUnknown, format)
		assert.Equal(t, SummaryMetrics{}, metrics)
	})
}
