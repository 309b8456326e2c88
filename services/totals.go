// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package services

import (
	"github.com/l3montree-dev/reportreader/database/models"
	"github.com/l3montree-dev/reportreader/dtos"
)

// CalculateTotals reduces the stored summaries into cross-report aggregates.
// It is a pure field-wise sum over the rows handed in - callers pass the
// current store state on every query, so the totals can never drift from the
// store the way an incrementally maintained counter could. Zero rows yield
// all-zero totals, never an error.
func CalculateTotals(reports []models.Report) dtos.Totals {
	totals := dtos.Totals{
		TotalReports: len(reports),
	}

	for _, report := range reports {
		totals.TotalFindings += report.TotalFindings
		totals.TotalFiles += report.TotalFiles
		totals.TotalRules += report.TotalRules

		totals.Severity.Critical += report.SeverityCritical
		totals.Severity.High += report.SeverityHigh
		totals.Severity.Medium += report.SeverityMedium
		totals.Severity.Low += report.SeverityLow
		totals.Severity.Info += report.SeverityInfo
	}

	return totals
}
