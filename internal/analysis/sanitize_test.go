package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenia-app/serenia/internal/domain"
)

func TestSanitizeTotality(t *testing.T) {
	// Every shape must resolve to a structurally complete result, never panic.
	inputs := []map[string]any{
		nil,
		{},
		{"emotions": "not-an-array", "primary": 42, "mood_vector": []any{1, 2}},
		{"emotions": []any{"scalar", 3.14, nil}},
		{"emotions": []any{map[string]any{"emotion": []any{"ansiedad"}, "intensity": map[string]any{}, "phrases": "nope"}}},
		{"summary": 123, "suggestions_quick": map[string]any{}, "red_flags": "yes"},
		{"suggestions_practice": []any{nil, false}},
		{"mood_vector": map[string]any{"valence": "abc", "arousal": nil}},
		{"triggers": []any{nil, 1, true, map[string]any{}}},
	}

	for i, raw := range inputs {
		got := Sanitize(raw)

		assert.True(t, domain.ValidEmotion(string(got.Primary)), "input %d: primary %q", i, got.Primary)
		assert.NotNil(t, got.Emotions, "input %d", i)
		assert.NotNil(t, got.Triggers, "input %d", i)
		assert.NotNil(t, got.SuggestionsQuick, "input %d", i)
		assert.GreaterOrEqual(t, got.MoodVector.Valence, 0.0, "input %d", i)
		assert.LessOrEqual(t, got.MoodVector.Valence, 1.0, "input %d", i)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	raw := map[string]any{
		"emotions": []any{
			map[string]any{"emotion": "ansiedad", "intensity": 99.0, "confidence": 1.5, "phrases": []any{"me tiemblan las manos", "no puedo dormir", "extra"}},
			map[string]any{"emotion": "furioso", "intensity": -5.0},
		},
		"primary":     "desconocida",
		"mood_vector": map[string]any{"valence": 0.2, "arousal": 3.0},
		"summary":     "Un día complicado pero con momentos de calma al final de la tarde.",
		"suggestions_practice": []any{
			map[string]any{"title": "", "minutes": 0.0, "steps": []any{"Paso 1", "Paso 2"}},
		},
		"red_flags": map[string]any{"self_harm": 0.0, "crisis": "sí", "reason": "mención indirecta"},
	}

	first := Sanitize(raw)

	// Round-trip the sanitized value through JSON to recover the generic shape.
	data, err := json.Marshal(first)
	require.NoError(t, err)
	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))

	second := Sanitize(generic)
	assert.Equal(t, first, second, "sanitization must be a fixed point")
}

func TestSanitizeBounds(t *testing.T) {
	many := make([]any, 10)
	for i := range many {
		many[i] = "item"
	}
	emotions := make([]any, 5)
	for i := range emotions {
		emotions[i] = map[string]any{"emotion": "calma", "phrases": many}
	}

	long := make([]rune, 500)
	for i := range long {
		long[i] = 'á'
	}
	longStr := string(long)

	got := Sanitize(map[string]any{
		"emotions":             emotions,
		"triggers":             many,
		"body_signals":         many,
		"cognitive_patterns":   many,
		"protective_factors":   many,
		"summary":              longStr,
		"suggestions_quick":    many,
		"suggestions_practice": many,
		"citations":            many,
		"red_flags":            map[string]any{"reason": longStr},
	})

	assert.LessOrEqual(t, len(got.Emotions), 3)
	for _, e := range got.Emotions {
		assert.LessOrEqual(t, len(e.Phrases), 2)
		for _, p := range e.Phrases {
			assert.LessOrEqual(t, len([]rune(p)), 60)
		}
	}
	assert.LessOrEqual(t, len([]rune(got.Summary)), 180)
	assert.LessOrEqual(t, len(got.Triggers), 6)
	assert.LessOrEqual(t, len(got.BodySignals), 6)
	assert.LessOrEqual(t, len(got.CognitivePatterns), 6)
	assert.LessOrEqual(t, len(got.ProtectiveFactors), 6)
	assert.LessOrEqual(t, len(got.SuggestionsQuick), 2)
	assert.LessOrEqual(t, len(got.SuggestionsPractice), 1)
	assert.LessOrEqual(t, len(got.Citations), 4)
	assert.LessOrEqual(t, len([]rune(got.RedFlags.Reason)), 120)
}

func TestSanitizeClamping(t *testing.T) {
	tests := []struct {
		name      string
		intensity any
		want      int
	}{
		{name: "below range", intensity: -5.0, want: 1},
		{name: "above range", intensity: 99.0, want: 10},
		{name: "non-numeric string defaults", intensity: "abc", want: 5},
		{name: "absent defaults", intensity: nil, want: 5},
		{name: "numeric string coerces", intensity: "7", want: 7},
		{name: "in range", intensity: 4.0, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(map[string]any{
				"emotions": []any{map[string]any{"emotion": "calma", "intensity": tt.intensity}},
			})
			require.Len(t, got.Emotions, 1)
			assert.Equal(t, tt.want, got.Emotions[0].Intensity)
		})
	}

	t.Run("confidence clamps into [0,1]", func(t *testing.T) {
		got := Sanitize(map[string]any{
			"emotions": []any{
				map[string]any{"emotion": "calma", "confidence": 1.5},
				map[string]any{"emotion": "calma", "confidence": -0.2},
			},
		})
		require.Len(t, got.Emotions, 2)
		assert.Equal(t, 1.0, got.Emotions[0].Confidence)
		assert.Equal(t, 0.0, got.Emotions[1].Confidence)
	})

	t.Run("practice minutes clamp", func(t *testing.T) {
		got := Sanitize(map[string]any{
			"suggestions_practice": []any{map[string]any{"minutes": "oops"}},
		})
		require.Len(t, got.SuggestionsPractice, 1)
		assert.Equal(t, 3, got.SuggestionsPractice[0].Minutes)
		assert.Equal(t, "Práctica breve", got.SuggestionsPractice[0].Title)
	})
}

func TestSanitizeEnumFallback(t *testing.T) {
	t.Run("unknown emotion maps to neutra", func(t *testing.T) {
		got := Sanitize(map[string]any{
			"emotions": []any{map[string]any{"emotion": "furioso"}},
		})
		require.Len(t, got.Emotions, 1)
		assert.Equal(t, domain.EmotionNeutra, got.Emotions[0].Emotion)
	})

	t.Run("primary falls back to first surviving emotion", func(t *testing.T) {
		got := Sanitize(map[string]any{
			"emotions": []any{map[string]any{"emotion": "tristeza"}},
		})
		assert.Equal(t, domain.EmotionTristeza, got.Primary)
	})

	t.Run("primary falls back to neutra with no emotions", func(t *testing.T) {
		got := Sanitize(map[string]any{})
		assert.Equal(t, domain.EmotionNeutra, got.Primary)
	})

	t.Run("valid primary wins over emotions", func(t *testing.T) {
		got := Sanitize(map[string]any{
			"primary":  "alegria",
			"emotions": []any{map[string]any{"emotion": "tristeza"}},
		})
		assert.Equal(t, domain.EmotionAlegria, got.Primary)
	})
}

func TestSanitizeTruthiness(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want bool
	}{
		{name: "bool true", val: true, want: true},
		{name: "bool false", val: false, want: false},
		{name: "zero", val: 0.0, want: false},
		{name: "nonzero", val: 2.0, want: true},
		{name: "empty string", val: "", want: false},
		{name: "nonempty string", val: "no", want: true},
		{name: "absent", val: nil, want: false},
		{name: "object", val: map[string]any{}, want: true},
		{name: "array", val: []any{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(map[string]any{"red_flags": map[string]any{"crisis": tt.val}})
			assert.Equal(t, tt.want, got.RedFlags.Crisis)
		})
	}
}

func TestSanitizeMoodVectorDefaults(t *testing.T) {
	got := Sanitize(map[string]any{})
	assert.Equal(t, domain.MoodVector{Valence: 0.5, Arousal: 0.5}, got.MoodVector)

	got = Sanitize(map[string]any{"mood_vector": "broken"})
	assert.Equal(t, domain.MoodVector{Valence: 0.5, Arousal: 0.5}, got.MoodVector)
}

func TestSanitizePreservesOrder(t *testing.T) {
	got := Sanitize(map[string]any{
		"triggers": []any{"c", "a", "b", "a"},
	})
	// No re-ranking, no deduplication.
	assert.Equal(t, []string{"c", "a", "b", "a"}, got.Triggers)
}
