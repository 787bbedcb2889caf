package models

// SuggestionCategory classifies an activity suggestion.
type SuggestionCategory string

const (
	CategoryTravel   SuggestionCategory = "travel"
	CategoryOutdoor  SuggestionCategory = "outdoor"
	CategoryIndoor   SuggestionCategory = "indoor"
	CategoryClothing SuggestionCategory = "clothing"
	CategoryFood     SuggestionCategory = "food"
)

// ValidCategory reports whether c is one of the known suggestion categories.
func ValidCategory(c SuggestionCategory) bool {
	switch c {
	case CategoryTravel, CategoryOutdoor, CategoryIndoor, CategoryClothing, CategoryFood:
		return true
	}
	return false
}

// ActivitySuggestion is one weather-grounded activity card. Priority is
// expected in 1..5; clients bucket >=4 as high and >=3 as medium.
type ActivitySuggestion struct {
	Category    SuggestionCategory `json:"category"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Reasoning   string             `json:"reasoning"`
	Icon        string             `json:"icon"`
	Priority    int                `json:"priority"`
}

// AIResponse is the structured payload parsed out of the generative
// provider's reply.
type AIResponse struct {
	Suggestions            []ActivitySuggestion `json:"suggestions"`
	Explanation            string               `json:"explanation"`
	AdditionalTips         []string             `json:"additionalTips"`
	ConversationalResponse string               `json:"conversationalResponse"`
}
