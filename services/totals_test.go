// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package services

import (
	"testing"

	"github.com/l3montree-dev/reportreader/database/models"
	"github.com/l3montree-dev/reportreader/dtos"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals(t *testing.T) {
	t.Run("zero rows yield all-zero totals", func(t *testing.T) {
		assert.Equal(t, dtos.Totals{}, CalculateTotals(nil))
		assert.Equal(t, dtos.Totals{}, CalculateTotals([]models.Report{}))
	})

	t.Run("sums every numeric field across rows", func(t *testing.T) {
		totals := CalculateTotals([]models.Report{
			{
				TotalFindings: 5, TotalFiles: 2, TotalRules: 3,
				SeverityCritical: 1, SeverityHigh: 2, SeverityMedium: 1, SeverityLow: 0, SeverityInfo: 1,
			},
			{
				TotalFindings: 2, TotalFiles: 1, TotalRules: 1,
				SeverityHigh: 1, SeverityLow: 1,
			},
		})

		assert.Equal(t, dtos.Totals{
			TotalReports:  2,
			TotalFindings: 7,
			TotalFiles:    3,
			TotalRules:    4,
			Severity: dtos.SeverityCounts{
				Critical: 1,
				High:     3,
				Medium:   1,
				Low:      1,
				Info:     2,
			},
		}, totals)
	})

	t.Run("matches the field-wise sum of a listing", func(t *testing.T) {
		reports := []models.Report{
			{TotalFindings: 1, SeverityInfo: 1},
			{TotalFindings: 4, TotalFiles: 2, SeverityCritical: 4},
			{TotalFindings: 0},
		}

		totals := CalculateTotals(reports)

		var findings, critical int
		for _, report := range reports {
			findings += report.TotalFindings
			critical += report.SeverityCritical
		}
		assert.Equal(t, findings, totals.TotalFindings)
		assert.Equal(t, critical, totals.Severity.Critical)
		assert.Equal(t, len(reports), totals.TotalReports)
	})
}
