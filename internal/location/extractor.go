// Package location turns free-form user utterances (English or Japanese,
// typed or voice-transcribed) into a best-guess city name for the weather
// provider. It is a heuristic, not a geocoder: it combines a Japanese-term
// dictionary, a gazetteer of known city names and a list of phrase patterns,
// in that strict priority order.
package location

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCase capitalizes each word of a place name. A fresh caser per call:
// cases.Caser is stateful and not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// Extract returns the best-guess place name in text, or ok=false when no
// location could be determined. It never errors; unrecognizable input simply
// yields no result. A false result with WantsGeolocation(text)==true means
// the caller should fall back to device coordinates.
func Extract(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	// Japanese dictionary first, against the unmodified input. Dictionary
	// hits win over anything else in the text.
	for _, entry := range japaneseDictionary {
		if strings.Contains(text, entry.Japanese) {
			return entry.English, true
		}
	}

	// Phrase patterns, fixed order, first non-empty capture wins.
	for _, pattern := range phrasePatterns {
		match := pattern.FindStringSubmatch(text)
		if len(match) < 2 || match[1] == "" {
			continue
		}

		candidate := cleanCandidate(match[1])
		if candidate == "" {
			continue
		}

		length := utf8.RuneCountInString(candidate)
		if length > 2 && length < 50 && !excludePattern.MatchString(candidate) {
			return titleCase(candidate), true
		}
	}

	// Direct gazetteer scan, whole-word, case-insensitive.
	for i, pattern := range gazetteerPatterns {
		if pattern.MatchString(text) {
			return titleCase(gazetteer[i]), true
		}
	}

	// "Current location" style queries are a deliberate miss: the caller
	// should use geolocation instead.
	if WantsGeolocation(text) {
		return "", false
	}

	// Generic Japan queries default to Tokyo.
	lower := strings.ToLower(text)
	if strings.Contains(lower, "japan") && !strings.Contains(lower, " in ") {
		return "Tokyo", true
	}

	return "", false
}

// WantsGeolocation reports whether text asks about the user's own location,
// signalling the caller to resolve coordinates via the device instead.
func WantsGeolocation(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "current") ||
		strings.Contains(lower, "here") ||
		strings.Contains(lower, "my location")
}

// cleanCandidate strips stop words from a captured phrase, collapses
// whitespace and keeps only the first token when a region or state qualifier
// trails the city name ("Aurangabad Maharashtra" -> "Aurangabad").
func cleanCandidate(raw string) string {
	candidate := strings.TrimSpace(raw)
	candidate = stopWordPattern.ReplaceAllString(candidate, "")
	candidate = multiSpacePattern.ReplaceAllString(candidate, " ")
	candidate = strings.TrimSpace(candidate)

	if parts := strings.Fields(candidate); len(parts) > 1 {
		candidate = parts[0]
	}

	return candidate
}
