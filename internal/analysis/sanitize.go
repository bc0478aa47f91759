package analysis

import (
	"math"
	"strconv"

	"github.com/serenia-app/serenia/internal/domain"
)

// Bounds of the normalized result. These mirror the schema the prompt asks
// the model for, but they are enforced here regardless of what comes back.
const (
	maxEmotions   = 3
	maxPhrases    = 2
	maxPhraseLen  = 60
	maxListItems  = 6
	maxSummaryLen = 180
	maxQuick      = 2
	maxPractice   = 1
	maxSteps      = 5
	maxTitleLen   = 60
	maxReasonLen  = 120
	maxCitations  = 4
)

// Field defaults used when a value is absent or not coercible.
const (
	defaultIntensity  = 5
	defaultConfidence = 0.7
	defaultValence    = 0.5
	defaultArousal    = 0.5
	defaultMinutes    = 3
	defaultTitle      = "Práctica breve"
)

// Sanitize turns a candidate object of unknown shape into a bounded,
// render-safe Analysis. It is total: absence, wrong types and out-of-range
// values all resolve to defaults, never to an error. Sanitizing an already
// sanitized value is a fixed point.
func Sanitize(raw map[string]any) domain.Analysis {
	emotions := sanitizeEmotions(raw["emotions"])

	mv := asObject(raw["mood_vector"])

	return domain.Analysis{
		Emotions: emotions,
		Primary:  sanitizePrimary(raw["primary"], emotions),
		MoodVector: domain.MoodVector{
			Valence: clamp(asNumber(mv["valence"], defaultValence), 0, 1),
			Arousal: clamp(asNumber(mv["arousal"], defaultArousal), 0, 1),
		},
		Triggers:            stringList(raw["triggers"], maxListItems, maxSummaryLen),
		BodySignals:         stringList(raw["body_signals"], maxListItems, maxSummaryLen),
		CognitivePatterns:   stringList(raw["cognitive_patterns"], maxListItems, maxSummaryLen),
		ProtectiveFactors:   stringList(raw["protective_factors"], maxListItems, maxSummaryLen),
		Summary:             asString(raw["summary"], maxSummaryLen),
		SuggestionsQuick:    stringList(raw["suggestions_quick"], maxQuick, maxSummaryLen),
		SuggestionsPractice: sanitizePractices(raw["suggestions_practice"]),
		RedFlags:            sanitizeRedFlags(raw["red_flags"]),
		Citations:           stringList(raw["citations"], maxCitations, maxSummaryLen),
	}
}

func sanitizeEmotions(v any) []domain.EmotionRecord {
	items := asArray(v)
	if len(items) > maxEmotions {
		items = items[:maxEmotions]
	}

	out := make([]domain.EmotionRecord, 0, len(items))
	for _, item := range items {
		e := asObject(item)
		out = append(out, domain.EmotionRecord{
			Emotion:    sanitizeEmotion(e["emotion"]),
			Intensity:  clampInt(asNumber(e["intensity"], defaultIntensity), 1, 10),
			Confidence: clamp(asNumber(e["confidence"], defaultConfidence), 0, 1),
			Phrases:    stringList(e["phrases"], maxPhrases, maxPhraseLen),
		})
	}
	return out
}

func sanitizeEmotion(v any) domain.Emotion {
	if s, ok := v.(string); ok && domain.ValidEmotion(s) {
		return domain.Emotion(s)
	}
	return domain.EmotionNeutra
}

// sanitizePrimary resolves the primary emotion: the source value when valid,
// otherwise the first surviving emotion record, otherwise "neutra". The
// emotions argument must already be sanitized.
func sanitizePrimary(v any, emotions []domain.EmotionRecord) domain.Emotion {
	if s, ok := v.(string); ok && domain.ValidEmotion(s) {
		return domain.Emotion(s)
	}
	if len(emotions) > 0 {
		return emotions[0].Emotion
	}
	return domain.EmotionNeutra
}

func sanitizePractices(v any) []domain.PracticeSuggestion {
	items := asArray(v)
	if len(items) > maxPractice {
		items = items[:maxPractice]
	}

	out := make([]domain.PracticeSuggestion, 0, len(items))
	for _, item := range items {
		p := asObject(item)
		title := asString(p["title"], maxTitleLen)
		if title == "" {
			title = defaultTitle
		}
		out = append(out, domain.PracticeSuggestion{
			Title:   title,
			Minutes: clampInt(asNumber(p["minutes"], defaultMinutes), 1, 10),
			Steps:   stringList(p["steps"], maxSteps, maxSummaryLen),
		})
	}
	return out
}

func sanitizeRedFlags(v any) domain.RedFlags {
	rf := asObject(v)
	return domain.RedFlags{
		SelfHarm: truthy(rf["self_harm"]),
		Crisis:   truthy(rf["crisis"]),
		Reason:   asString(rf["reason"], maxReasonLen),
	}
}

// clamp is the single clamp operation: max(lo, min(hi, v)).
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v float64, lo, hi int) int {
	return int(math.Round(clamp(v, float64(lo), float64(hi))))
}

// asNumber coerces v to a finite float64, falling back to def.
func asNumber(v any, def float64) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return def
		}
		f = parsed
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return def
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// asString coerces v to a string and hard-cuts it to max runes. Non-strings
// become the empty string.
func asString(v any, max int) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max])
	}
	return s
}

// asArray returns v as a slice, or an empty slice when v is not one.
func asArray(v any) []any {
	if a, ok := v.([]any); ok {
		return a
	}
	return nil
}

// asObject returns v as a map, or nil when v is not one. Lookups on the nil
// map yield absent values, which every field rule resolves to its default.
func asObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

// stringList truncates v to maxItems preserving order, then keeps its string
// elements cut to maxLen runes. Non-string elements are dropped.
func stringList(v any, maxItems, maxLen int) []string {
	items := asArray(v)
	if len(items) > maxItems {
		items = items[:maxItems]
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, asString(s, maxLen))
		}
	}
	return out
}

// truthy applies loose truthiness: false, 0, NaN, "" and absent values are
// false; everything else, including non-empty collections, is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}
