package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_PhrasePatterns(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"basic weather query", "what's the weather in Tokyo?", "Tokyo"},
		{"weather for", "weather for London", "London"},
		{"weather at", "check weather at Mumbai", "Mumbai"},
		{"going to", "going to Mumbai next week", "Mumbai"},
		{"trip to", "planning a trip to Bangalore", "Bangalore"},
		{"visiting", "visiting Chennai tomorrow", "Chennai"},
		{"romanized japanese", "Tokyo no tenki wa dou desu ka?", "Tokyo"},
		{"travel with temporal words", "I am planning to go to Dehradun tomorrow so tell me about the weather", "Dehradun"},
		{"trailing state qualifier", "weather in Aurangabad Maharashtra", "Aurangabad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text)
			require.True(t, ok, "expected a location in %q", tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_JapaneseDictionaryPriority(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain japanese query", "東京の天気はどうですか", "Tokyo"},
		{"osaka", "大阪の天気を教えて", "Osaka"},
		{"japan defaults to tokyo", "日本の天気はどうですか", "Tokyo"},
		{"katakana indian city", "オーランガバードの天気", "Aurangabad"},
		// Dictionary wins even when an English city also appears.
		{"mixed script prefers japanese", "京都 or maybe London?", "Kyoto"},
		{"japanese inside english sentence", "what's the weather in 札幌 today", "Sapporo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_GazetteerFallback(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare city name", "Tokyo", "Tokyo"},
		{"city in sentence without pattern", "is it cold in beautiful Paris right this moment", "Paris"},
		{"multi word city", "I love new york pizza", "New York"},
		{"case insensitive", "SEATTLE sounds nice", "Seattle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_NoLocation(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only", "   "},
		{"no location mentioned", "I like walking"},
		{"stop word only", "tomorrow"},
		{"current location query", "weather here please"},
		{"my location query", "what's the weather at my location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text)
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}

func TestExtract_TwoCitiesFirstRuleWins(t *testing.T) {
	// Priority order decides, not specificity or position: the first
	// matching pattern's capture is cleaned, and only its first token
	// survives.
	got, ok := Extract("weather in London or Paris")
	require.True(t, ok)
	assert.Equal(t, "London", got)
}

func TestExtract_JapanWithoutPreposition(t *testing.T) {
	got, ok := Extract("japan")
	require.True(t, ok)
	assert.Equal(t, "Tokyo", got)
}

func TestExtract_Idempotent(t *testing.T) {
	inputs := []string{
		"what's the weather in Tokyo?",
		"going to Mumbai next week",
		"東京の天気はどうですか",
		"I love new york pizza",
	}

	for _, input := range inputs {
		first, ok := Extract(input)
		require.True(t, ok, input)

		second, ok := Extract(first)
		require.True(t, ok, "extracted name %q should round-trip", first)
		assert.Equal(t, first, second)
	}
}

func TestWantsGeolocation(t *testing.T) {
	assert.True(t, WantsGeolocation("weather here"))
	assert.True(t, WantsGeolocation("my location please"))
	assert.True(t, WantsGeolocation("current weather"))
	assert.False(t, WantsGeolocation("weather in Tokyo"))
}
