// Package domain provides the shared types and canonical errors for the service.
package domain

// Emotion is one of the seven fixed categories the analysis pipeline recognizes.
type Emotion string

const (
	EmotionAnsiedad    Emotion = "ansiedad"
	EmotionCalma       Emotion = "calma"
	EmotionAlegria     Emotion = "alegria"
	EmotionTristeza    Emotion = "tristeza"
	EmotionEnojo       Emotion = "enojo"
	EmotionFrustracion Emotion = "frustracion"
	EmotionNeutra      Emotion = "neutra"
)

// Emotions lists the valid categories in a stable order.
var Emotions = []Emotion{
	EmotionAnsiedad,
	EmotionCalma,
	EmotionAlegria,
	EmotionTristeza,
	EmotionEnojo,
	EmotionFrustracion,
	EmotionNeutra,
}

// ValidEmotion reports whether s is one of the seven fixed categories.
func ValidEmotion(s string) bool {
	for _, e := range Emotions {
		if string(e) == s {
			return true
		}
	}
	return false
}

// EmotionRecord is one detected emotion with its supporting evidence.
type EmotionRecord struct {
	Emotion    Emotion  `json:"emotion"`
	Intensity  int      `json:"intensity"`
	Confidence float64  `json:"confidence"`
	Phrases    []string `json:"phrases"`
}

// MoodVector places the entry on a valence/arousal plane, both in [0,1].
type MoodVector struct {
	Valence float64 `json:"valence"`
	Arousal float64 `json:"arousal"`
}

// PracticeSuggestion is a short guided exercise recommended by the analysis.
type PracticeSuggestion struct {
	Title   string   `json:"title"`
	Minutes int      `json:"minutes"`
	Steps   []string `json:"steps"`
}

// RedFlags carries safety signals detected in the entry.
type RedFlags struct {
	SelfHarm bool   `json:"self_harm"`
	Crisis   bool   `json:"crisis"`
	Reason   string `json:"reason"`
}

// Analysis is the normalized, bounded result of analyzing a journal entry.
// Every field is always present and within its documented bound, no matter
// how malformed the upstream model reply was.
type Analysis struct {
	Emotions            []EmotionRecord      `json:"emotions"`
	Primary             Emotion              `json:"primary"`
	MoodVector          MoodVector           `json:"mood_vector"`
	Triggers            []string             `json:"triggers"`
	BodySignals         []string             `json:"body_signals"`
	CognitivePatterns   []string             `json:"cognitive_patterns"`
	ProtectiveFactors   []string             `json:"protective_factors"`
	Summary             string               `json:"summary"`
	SuggestionsQuick    []string             `json:"suggestions_quick"`
	SuggestionsPractice []PracticeSuggestion `json:"suggestions_practice"`
	RedFlags            RedFlags             `json:"red_flags"`
	Citations           []string             `json:"citations"`
}

// AnalysisResult pairs a normalized analysis with the model that produced it.
type AnalysisResult struct {
	UsedModel string `json:"usedModel"`
	Analysis
}
