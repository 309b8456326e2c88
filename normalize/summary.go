// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package normalize

// SummaryMetrics are the derived counts persisted with every stored report.
// Invariant: TotalFindings equals the sum of the five severity counters.
type SummaryMetrics struct {
	TotalFindings    int
	TotalFiles       int
	TotalRules       int
	SeverityCritical int
	SeverityHigh     int
	SeverityMedium   int
	SeverityLow      int
	SeverityInfo     int
}

// Summarize reduces a finding sequence into per-report counts in a single
// pass. Empty file paths and rule ids never count as distinct values. The
// result does not depend on finding order.
func Summarize(findings []Finding) SummaryMetrics {
	var metrics SummaryMetrics

	files := make(map[string]struct{})
	rules := make(map[string]struct{})

	for _, finding := range findings {
		metrics.TotalFindings++

		if finding.FilePath != "" {
			files[finding.FilePath] = struct{}{}
		}
		if finding.RuleID != "" {
			rules[finding.RuleID] = struct{}{}
		}

		switch BucketSeverity(finding.RawSeverity) {
		case SeverityCritical:
			metrics.SeverityCritical++
		case SeverityHigh:
			metrics.SeverityHigh++
		case SeverityMedium:
			metrics.SeverityMedium++
		case SeverityLow:
			metrics.SeverityLow++
		default:
			metrics.SeverityInfo++
		}
	}

	metrics.TotalFiles = len(files)
	metrics.TotalRules = len(rules)

	return metrics
}

// SummarizeDocument classifies and aggregates a decoded document in one step.
// Unknown or undecodable documents yield the unknown format and all-zero
// metrics - never an error.
func SummarizeDocument(doc any) (ReportFormat, SummaryMetrics) {
	format := ClassifyFormat(doc)
	return format, Summarize(ExtractFindings(doc, format))
}
