// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketSeverity(t *testing.T) {
	t.Run("covers both tool vocabularies", func(t *testing.T) {
		table := []struct {
			input    string
			expected Severity
		}{
			{"critical", SeverityCritical},
			{"CRITICAL", SeverityCritical},
			{"error", SeverityHigh},
			{"high", SeverityHigh},
			{"HIGH", SeverityHigh},
			{"warning", SeverityMedium},
			{"medium", SeverityMedium},
			{"note", SeverityLow},
			{"low", SeverityLow},
			{"info", SeverityInfo},
			{"none", SeverityInfo},
		}

		for _, tt := range table {
			assert.Equal(t, tt.expected, BucketSeverity(tt.input), "input %q", tt.input)
		}
	})

	t.Run("empty string falls through to info", func(t *testing.T) {
		assert.Equal(t, SeverityInfo, BucketSeverity(""))
	})

	t.Run("unrecognized vocabulary falls through to info", func(t *testing.T) {
		assert.Equal(t, SeverityInfo, BucketSeverity("blocker"))
	})

	t.Run("substring priority is fixed", func(t *testing.T) {
		// high is checked before warning, so a combined value buckets as high.
		// this precedence is part of the persisted data contract, do not reorder.
		assert.Equal(t, SeverityHigh, BucketSeverity("high-warning"))
		assert.Equal(t, SeverityCritical, BucketSeverity("critical-low"))
		assert.Equal(t, SeverityMedium, BucketSeverity("medium-low"))
	})

	t.Run("total over arbitrary input", func(t *testing.T) {
		buckets := []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
		for _, input := range []string{"", " ", "ERROR: something", "Sev/Unknown", "noteworthy"} {
			assert.Contains(t, buckets, BucketSeverity(input))
		}
	})
}
