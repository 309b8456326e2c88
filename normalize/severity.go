// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package normalize

import "strings"

// Severity is one of the five canonical buckets every finding lands in.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// BucketSeverity maps a tool specific severity string to a canonical bucket
// using case-insensitive substring matching, first match wins. The single
// ladder covers both the SARIF vocabulary (error/warning/note) and the
// Semgrep one (high/medium/low), so results of both tools aggregate into
// compatible buckets. A value like "high-warning" buckets as high because
// the high check runs before the warning check - new vocabularies belong in
// this table, not in callers.
func BucketSeverity(raw string) Severity {
	severity := strings.ToLower(raw)

	switch {
	case strings.Contains(severity, "critical"):
		return SeverityCritical
	case strings.Contains(severity, "error"), strings.Contains(severity, "high"):
		return SeverityHigh
	case strings.Contains(severity, "warning"), strings.Contains(severity, "medium"):
		return SeverityMedium
	case strings.Contains(severity, "note"), strings.Contains(severity, "low"):
		return SeverityLow
	default:
		// includes the empty string
		return SeverityInfo
	}
}
