package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuideFormat_Valid(t *testing.T) {
	assert.True(t, FormatText.Valid())
	assert.True(t, FormatHTML.Valid())
	assert.True(t, FormatMarkdown.Valid())
	assert.True(t, FormatPDF.Valid())
	assert.False(t, GuideFormat("docx").Valid())
	assert.False(t, GuideFormat("").Valid())
}

func TestGuide_Tags(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
		expected []string
	}{
		{
			name:     "nil metadata",
			metadata: nil,
			expected: nil,
		},
		{
			name:     "no tags key",
			metadata: map[string]any{"author": "someone"},
			expected: nil,
		},
		{
			name:     "string slice",
			metadata: map[string]any{"tags": []string{"rpg", "walkthrough"}},
			expected: []string{"rpg", "walkthrough"},
		},
		{
			name:     "any slice from JSON round-trip",
			metadata: map[string]any{"tags": []any{"rpg", "walkthrough"}},
			expected: []string{"rpg", "walkthrough"},
		},
		{
			name:     "mixed any slice drops non-strings",
			metadata: map[string]any{"tags": []any{"rpg", 3, "cheats"}},
			expected: []string{"rpg", "cheats"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Guide{Metadata: tt.metadata}
			assert.Equal(t, tt.expected, g.Tags())
		})
	}
}

func TestImportStage_Terminal(t *testing.T) {
	assert.True(t, StageComplete.Terminal())
	assert.True(t, StageError.Terminal())
	assert.False(t, StageIdle.Terminal())
	assert.False(t, StageDownloading.Terminal())
	assert.False(t, StageExtracting.Terminal())
	assert.False(t, StageImporting.Terminal())
}
