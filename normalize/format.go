// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package normalize

// ReportFormat identifies the shape of an uploaded static analysis document.
// The empty string means the document matched no known shape.
type ReportFormat string

const (
	FormatSarif       ReportFormat = "SARIF"
	FormatSemgrepJSON ReportFormat = "Semgrep JSON"
	FormatUnknown     ReportFormat = ""
)

// ClassifyFormat inspects an already decoded JSON document and decides which
// extraction rules apply. Checked in priority order: a top-level "runs" key
// wins over "results". Classification never fails - anything that is not a
// keyed object with one of the two marker keys is simply unknown.
func ClassifyFormat(doc any) ReportFormat {
	obj, ok := doc.(map[string]any)
	if !ok {
		return FormatUnknown
	}

	if _, ok := obj["runs"]; ok {
		return FormatSarif
	}
	if _, ok := obj["results"]; ok {
		return FormatSemgrepJSON
	}

	return FormatUnknown
}
