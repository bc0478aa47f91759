// Package analysis implements the AI emotion-analysis pipeline: a model
// cascade against the Anthropic Messages API, best-effort JSON extraction from
// the free-form reply, and total sanitization into a bounded result.
package analysis

import (
	"fmt"
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

// promptTemplate is the fixed instruction set sent to the model. It is
// parameterized only by the user's raw journal text, interpolated verbatim.
const promptTemplate = `Eres un analista emocional para estudiantes universitarios.
Devuelve SOLO JSON válido (sin markdown, sin comentarios) con este EXACTO esquema:

{
  "emotions": [
    {"emotion": "ansiedad", "intensity": 7, "confidence": 0.83, "phrases": ["...","..."]}
  ],
  "primary": "ansiedad",
  "mood_vector": {"valence": 0.32, "arousal": 0.74},
  "triggers": ["..."],
  "body_signals": ["..."],
  "cognitive_patterns": ["..."],
  "protective_factors": ["..."],
  "summary": "máx 180 caracteres, tono empático y no clínico",
  "suggestions_quick": ["Tip 1", "Tip 2"],
  "suggestions_practice": [
    {"title": "Respiración box", "minutes": 3, "steps": ["Paso 1","Paso 2","Paso 3"]}
  ],
  "red_flags": {"self_harm": false, "crisis": false, "reason": ""},
  "citations": []
}

Reglas:
- Emociones válidas: ansiedad, calma, alegria, tristeza, enojo, frustracion, neutra
- "intensity": 1..10, "confidence": 0..1
- Máx 3 emociones; máx 2 frases por emoción (<=60 chars)
- Máx 2 suggestions_quick y 1 suggestions_practice (3–5 min)
- Evita diagnósticos clínicos. Solo orientación de bienestar.
- Entrega SOLO el JSON, sin ` + "```" + `, sin texto extra.

Texto:
"%s"`

// BuildPrompt interpolates the raw journal text into the fixed template.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}

var (
	codecOnce sync.Once
	codec     tokenizer.Codec
)

// EstimateTokens returns an approximate token count for s. Anthropic does not
// publish its tokenizer, so cl100k is used as a stand-in; the count feeds
// logging only, never request semantics.
func EstimateTokens(s string) int {
	codecOnce.Do(func() {
		codec, _ = tokenizer.Get(tokenizer.Cl100kBase)
	})
	if codec == nil {
		// Rough chars-per-token fallback.
		return len(s) / 4
	}
	ids, _, err := codec.Encode(s)
	if err != nil {
		return len(s) / 4
	}
	return len(ids)
}
