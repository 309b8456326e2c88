// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package normalize

// Finding is a single normalized result extracted from a report document.
// FilePath and RuleID may be empty when the document does not carry them -
// such findings still count towards the totals but are excluded from the
// distinct file and rule sets.
type Finding struct {
	FilePath    string
	RuleID      string
	RawSeverity string
}

// ExtractFindings flattens a classified document into a sequence of findings.
// Extraction is deliberately tolerant: missing or structurally unexpected
// fields degrade to empty strings instead of dropping the finding or failing
// the whole document.
func ExtractFindings(doc any, format ReportFormat) []Finding {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil
	}

	switch format {
	case FormatSarif:
		return extractSarifFindings(obj)
	case FormatSemgrepJSON:
		return extractSemgrepFindings(obj)
	default:
		return nil
	}
}

// extractSarifFindings walks runs[*].results[*].
func extractSarifFindings(doc map[string]any) []Finding {
	var findings []Finding

	for _, run := range asSlice(doc["runs"]) {
		runObj, ok := run.(map[string]any)
		if !ok {
			continue
		}

		for _, result := range asSlice(runObj["results"]) {
			res, ok := result.(map[string]any)
			if !ok {
				// a malformed result is still a finding
				findings = append(findings, Finding{})
				continue
			}

			finding := Finding{
				RuleID:      asString(res["ruleId"]),
				RawSeverity: asString(res["level"]),
			}

			if locations := asSlice(res["locations"]); len(locations) > 0 {
				if location, ok := locations[0].(map[string]any); ok {
					if physical, ok := location["physicalLocation"].(map[string]any); ok {
						if artifact, ok := physical["artifactLocation"].(map[string]any); ok {
							finding.FilePath = asString(artifact["uri"])
						}
					}
				}
			}

			findings = append(findings, finding)
		}
	}

	return findings
}

// extractSemgrepFindings takes results[*] directly. Semgrep carries the
// severity under extra.severity and defaults to info when absent.
func extractSemgrepFindings(doc map[string]any) []Finding {
	results := asSlice(doc["results"])
	findings := make([]Finding, 0, len(results))

	for _, result := range results {
		res, ok := result.(map[string]any)
		if !ok {
			findings = append(findings, Finding{RawSeverity: "info"})
			continue
		}

		finding := Finding{
			FilePath:    asString(res["path"]),
			RuleID:      asString(res["check_id"]),
			RawSeverity: "info",
		}
		if extra, ok := res["extra"].(map[string]any); ok {
			if severity := asString(extra["severity"]); severity != "" {
				finding.RawSeverity = severity
			}
		}

		findings = append(findings, finding)
	}

	return findings
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// asString degrades non-string values to the empty string.
func asString(v any) string {
	s, _ := v.(string)
	return s
}
