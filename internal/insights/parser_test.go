package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestions(t *testing.T) {
	raw := "Cut feed costs: switch to bulk purchasing.\n\n  Rotate pasture: rest each paddock 30 days.  \nJust do better\nTiming: milk at 5:30 and 17:30\n: orphaned description\n"

	got := ParseSuggestions(raw)
	require.Len(t, got, 5)

	assert.Equal(t, Suggestion{Title: "Cut feed costs", Description: "switch to bulk purchasing."}, got[0])
	assert.Equal(t, Suggestion{Title: "Rotate pasture", Description: "rest each paddock 30 days."}, got[1])
	// No colon: the whole line is the description.
	assert.Equal(t, Suggestion{Title: DefaultTitle, Description: "Just do better"}, got[2])
	// Only the first colon splits; later ones stay in the description.
	assert.Equal(t, Suggestion{Title: "Timing", Description: "milk at 5:30 and 17:30"}, got[3])
	// Empty left side falls back to the default title.
	assert.Equal(t, Suggestion{Title: DefaultTitle, Description: "orphaned description"}, got[4])
}

func TestParseSuggestionsEmptyInput(t *testing.T) {
	assert.Empty(t, ParseSuggestions(""))
	assert.Empty(t, ParseSuggestions("\n\n  \n"))
}

func TestParseSuggestionsFallbackLine(t *testing.T) {
	got := ParseSuggestions(FallbackSuggestion)
	require.Len(t, got, 1)
	assert.Equal(t, DefaultTitle, got[0].Title)
	assert.Equal(t, FallbackSuggestion, got[0].Description)
}
