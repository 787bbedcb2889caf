package location

import (
	"fmt"
	"strings"
)

// Intent classifies what a voice transcript is asking for.
type Intent string

const (
	IntentWeatherQuery    Intent = "weather_query"
	IntentActivityRequest Intent = "activity_request"
	IntentGeneralChat     Intent = "general_chat"
)

// weatherVocabulary maps Japanese weather and activity terms to English,
// used to interpret voice transcripts. Ordered; scanned in sequence.
var weatherVocabulary = []dictionaryEntry{
	{"晴れ", "sunny"},
	{"曇り", "cloudy"},
	{"雨", "rain"},
	{"雪", "snow"},
	{"風", "wind"},
	{"嵐", "storm"},
	{"霧", "fog"},
	{"暑い", "hot"},
	{"寒い", "cold"},
	{"涼しい", "cool"},
	{"暖かい", "warm"},
	{"気温", "temperature"},
	{"天気", "weather"},
	{"予報", "forecast"},
	{"どう", "how"},
	{"今日", "today"},
	{"明日", "tomorrow"},
	{"週末", "weekend"},
	{"散歩", "walk"},
	{"旅行", "travel"},
	{"外出", "go out"},
	{"運動", "exercise"},
	{"買い物", "shopping"},
}

var weatherTerms = map[string]bool{
	"weather": true, "forecast": true,
	"sunny": true, "cloudy": true, "rain": true, "snow": true,
	"hot": true, "cold": true,
}

var activityTerms = map[string]bool{
	"walk": true, "travel": true, "go out": true, "exercise": true, "shopping": true,
}

// TranscriptInsight is the interpretation of one voice transcript.
type TranscriptInsight struct {
	OriginalText     string
	TranslatedTerms  []string
	DetectedLocation string
	Intent           Intent
	Confidence       float64
}

// NormalizeText strips punctuation noise from a raw transcript: trims,
// removes Japanese sentence punctuation and collapses whitespace runs.
func NormalizeText(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.NewReplacer("。", "", "、", "", "！", "", "？", "").Replace(cleaned)
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	return strings.ToLower(cleaned)
}

// ProcessTranscript interprets a (possibly Japanese) voice transcript:
// translates known weather vocabulary, detects a mentioned city and
// classifies the intent with a rough confidence.
func ProcessTranscript(text string) TranscriptInsight {
	normalized := NormalizeText(text)

	insight := TranscriptInsight{
		OriginalText: text,
		Intent:       IntentGeneralChat,
		Confidence:   0.5,
	}

	for _, entry := range weatherVocabulary {
		if strings.Contains(normalized, entry.Japanese) {
			insight.TranslatedTerms = append(insight.TranslatedTerms, entry.English)
		}
	}
	for _, entry := range japaneseDictionary {
		if strings.Contains(normalized, entry.Japanese) {
			insight.DetectedLocation = entry.English
			break
		}
	}

	hasWeatherTerm := false
	hasActivityTerm := false
	for _, term := range insight.TranslatedTerms {
		if weatherTerms[term] {
			hasWeatherTerm = true
		}
		if activityTerms[term] {
			hasActivityTerm = true
		}
	}

	if hasWeatherTerm {
		insight.Intent = IntentWeatherQuery
		insight.Confidence = 0.8
	} else if hasActivityTerm {
		insight.Intent = IntentActivityRequest
		insight.Confidence = 0.7
	}

	return insight
}

// ContextString renders the insight as a prompt-context sentence for the
// generative provider.
func (t TranscriptInsight) ContextString() string {
	var b strings.Builder
	b.WriteString("User spoke in Japanese. ")

	if t.DetectedLocation != "" {
		fmt.Fprintf(&b, "Location mentioned: %s. ", t.DetectedLocation)
	}
	if len(t.TranslatedTerms) > 0 {
		fmt.Fprintf(&b, "Key terms: %s. ", strings.Join(t.TranslatedTerms, ", "))
	}
	fmt.Fprintf(&b, "Intent: %s (confidence: %d%%). ", t.Intent, int(t.Confidence*100))

	return b.String()
}

// IsWeatherRelated reports whether a transcript is asking about weather.
func IsWeatherRelated(text string) bool {
	insight := ProcessTranscript(text)
	return insight.Intent == IntentWeatherQuery || insight.Confidence > 0.6
}
