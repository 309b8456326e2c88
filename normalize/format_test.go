// Copyright 2025 l3montree GmbH.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFormat(t *testing.T) {
	t.Run("runs key classifies as SARIF", func(t *testing.T) {
		var doc any
		err := json.Unmarshal([]byte(`{"version":"2.1.0","runs":[]}`), &doc)
		assert.NoError(t, err)

		assert.Equal(t, FormatSarif, ClassifyFormat(doc))
	})

	t.Run("results key classifies as Semgrep JSON", func(t *testing.T) {
		var doc any
		err := json.Unmarshal([]byte(`{"results":[],"errors":[]}`), &doc)
		assert.NoError(t, err)

		assert.Equal(t, FormatSemgrepJSON, ClassifyFormat(doc))
	})

	t.Run("runs wins over results", func(t *testing.T) {
		var doc any
		err := json.Unmarshal([]byte(`{"runs":[],"results":[]}`), &doc)
		assert.NoError(t, err)

		assert.Equal(t, FormatSarif, ClassifyFormat(doc))
	})

	t.Run("neither marker key is unknown", func(t *testing.T) {
		var doc any
		err := json.Unmarshal([]byte(`{"findings":[]}`), &doc)
		assert.NoError(t, err)

		assert.Equal(t, FormatUnknown, ClassifyFormat(doc))
	})

	t.Run("non-object documents are unknown", func(t *testing.T) {
		assert.Equal(t, FormatUnknown, ClassifyFormat([]any{"runs"}))
		assert.Equal(t, FormatUnknown, ClassifyFormat("runs"))
		assert.Equal(t, FormatUnknown, ClassifyFormat(nil))
	})
}
