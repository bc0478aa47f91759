// Package library serves the curated self-help catalog: educational
// resources and self-assessment tests. Data is compiled into the binary.
package library

// Resource is an educational resource in the catalog.
type Resource struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Duration    string   `json:"duration"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"`
	Emotions    []string `json:"emotions"`
	Featured    bool     `json:"destacado"`
}

var resources = []Resource{
	{
		ID:          1,
		Title:       "Respiración 4-7-8 para calmar la ansiedad",
		Description: "Una técnica guiada de respiración para momentos de nerviosismo intenso.",
		Type:        "Audio",
		Duration:    "5 min",
		Category:    "Respiración",
		Difficulty:  "Principiante",
		Emotions:    []string{"ansioso", "estresado", "abrumado"},
		Featured:    true,
	},
	{
		ID:          2,
		Title:       "¿Qué es la rumiación y cómo frenarla?",
		Description: "Artículo breve sobre el ciclo de pensamientos repetitivos y estrategias para cortarlo.",
		Type:        "Artículo",
		Duration:    "7 min",
		Category:    "Psicoeducación",
		Difficulty:  "Todos",
		Emotions:    []string{"ansioso", "confundido"},
		Featured:    false,
	},
	{
		ID:          3,
		Title:       "Meditación para soltar el día",
		Description: "Meditación guiada para cerrar la jornada y prepararte para descansar.",
		Type:        "Audio",
		Duration:    "10 min",
		Category:    "Meditación",
		Difficulty:  "Principiante",
		Emotions:    []string{"cansado", "estresado"},
		Featured:    true,
	},
	{
		ID:          4,
		Title:       "Cómo hablar de tus emociones sin sentirte juzgado",
		Description: "Video con pautas prácticas para abrir conversaciones difíciles con personas de confianza.",
		Type:        "Video",
		Duration:    "12 min",
		Category:    "Relaciones",
		Difficulty:  "Intermedio",
		Emotions:    []string{"triste", "abrumado"},
		Featured:    false,
	},
	{
		ID:          5,
		Title:       "Planificador de pausas de estudio",
		Description: "Herramienta para organizar bloques de estudio con descansos que protegen tu energía.",
		Type:        "Herramienta",
		Duration:    "Sin estimar",
		Category:    "Hábitos",
		Difficulty:  "Todos",
		Emotions:    []string{"cansado", "desmotivado"},
		Featured:    false,
	},
	{
		ID:          6,
		Title:       "Primeros pasos en mindfulness",
		Description: "Ruta introductoria de una semana para construir el hábito de la atención plena.",
		Type:        "Ruta",
		Duration:    "7 días",
		Category:    "Mindfulness",
		Difficulty:  "Principiante",
		Emotions:    []string{"curioso", "ansioso"},
		Featured:    true,
	},
	{
		ID:          7,
		Title:       "Tristeza o depresión: señales para distinguirlas",
		Description: "Artículo sobre cuándo la tristeza sostenida merece acompañamiento profesional.",
		Type:        "Artículo",
		Duration:    "8 min",
		Category:    "Psicoeducación",
		Difficulty:  "Todos",
		Emotions:    []string{"triste", "desmotivado"},
		Featured:    false,
	},
	{
		ID:          8,
		Title:       "Body scan de tres minutos",
		Description: "Recorrido corporal corto para reconectar con el presente entre clases.",
		Type:        "Audio",
		Duration:    "3 min",
		Category:    "Mindfulness",
		Difficulty:  "Principiante",
		Emotions:    []string{"estresado", "abrumado", "confundido"},
		Featured:    false,
	},
}

// Resources returns the full catalog.
func Resources() []Resource {
	out := make([]Resource, len(resources))
	copy(out, resources)
	return out
}

// FilterByEmotion returns the resources tagged with the given emotion.
// An empty emotion returns the full catalog.
func FilterByEmotion(emotion string) []Resource {
	if emotion == "" {
		return Resources()
	}
	out := make([]Resource, 0)
	for _, r := range resources {
		for _, e := range r.Emotions {
			if e == emotion {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
