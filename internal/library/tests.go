package library

import (
	"fmt"

	"github.com/serenia-app/serenia/internal/domain"
)

// TestOption is one answer an assessment question accepts.
type TestOption struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// TestQuestion is a single assessment item. Inverse items score as the
// distance from the maximum option value.
type TestQuestion struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	IsInverse bool   `json:"is_inverse,omitempty"`
}

// Interpretation is a score band with its recommendation.
type Interpretation struct {
	Min    int    `json:"min"`
	Max    int    `json:"max"`
	Label  string `json:"label"`
	Action string `json:"action"`
}

// Test is a self-assessment questionnaire definition.
type Test struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Instructions string           `json:"instructions"`
	MinScore     int              `json:"min_score"`
	MaxScore     int              `json:"max_score"`
	Options      []TestOption     `json:"options"`
	Questions    []TestQuestion   `json:"questions"`
	Bands        []Interpretation `json:"results_interpretation"`
	// ScoreMultiplier scales the raw sum before band lookup. WHO-5 reports
	// on a 0..100 scale, so its raw 0..25 sum is multiplied by 4.
	ScoreMultiplier int `json:"-"`
}

func (t *Test) maxOptionValue() int {
	max := 0
	for _, o := range t.Options {
		if o.Value > max {
			max = o.Value
		}
	}
	return max
}

var tests = []Test{
	{
		ID:           "gad-7",
		Title:        "Escala de Ansiedad (GAD-7)",
		Description:  "Evalúa qué tan frecuentes han sido tus síntomas de ansiedad en las últimas 2 semanas.",
		Instructions: "Durante las últimas 2 semanas, ¿con qué frecuencia te han molestado los siguientes problemas?",
		MinScore:     0,
		MaxScore:     21,
		Options: []TestOption{
			{Label: "Nunca", Value: 0},
			{Label: "Varios días", Value: 1},
			{Label: "Más de la mitad de los días", Value: 2},
			{Label: "Casi todos los días", Value: 3},
		},
		Questions: []TestQuestion{
			{ID: 1, Text: "Sentirse nervioso/a, intranquilo/a o con los nervios de punta"},
			{ID: 2, Text: "No poder dejar de preocuparse o no poder controlar la preocupación"},
			{ID: 3, Text: "Preocuparse demasiado por diferentes cosas"},
			{ID: 4, Text: "Dificultad para relajarse"},
			{ID: 5, Text: "Estar tan inquieto/a que es difícil quedarse quieto/a"},
			{ID: 6, Text: "Facilidad para molestarse o irritarse"},
			{ID: 7, Text: "Sentir miedo como si algo terrible fuera a suceder"},
		},
		Bands: []Interpretation{
			{Min: 0, Max: 4, Label: "Ansiedad Mínima", Action: "Sigue practicando mindfulness preventivo."},
			{Min: 5, Max: 9, Label: "Ansiedad Leve", Action: "Te recomendamos nuestros ejercicios de respiración."},
			{Min: 10, Max: 14, Label: "Ansiedad Moderada", Action: "Considera usar el directorio de ayuda."},
			{Min: 15, Max: 21, Label: "Ansiedad Severa", Action: "Por favor, contacta a un profesional en nuestro directorio."},
		},
	},
	{
		ID:           "pss-10",
		Title:        "Escala de Estrés Percibido (PSS-10)",
		Description:  "Mide tu percepción del estrés en el último mes.",
		Instructions: "En el último mes, ¿con qué frecuencia has sentido lo siguiente?",
		MinScore:     0,
		MaxScore:     40,
		Options: []TestOption{
			{Label: "Nunca", Value: 0},
			{Label: "Casi nunca", Value: 1},
			{Label: "De vez en cuando", Value: 2},
			{Label: "A menudo", Value: 3},
			{Label: "Muy a menudo", Value: 4},
		},
		Questions: []TestQuestion{
			{ID: 1, Text: "¿Con qué frecuencia te has sentido afectado/a por algo que ocurrió inesperadamente?"},
			{ID: 2, Text: "¿Con qué frecuencia has sentido que eras incapaz de controlar las cosas importantes en tu vida?"},
			{ID: 3, Text: "¿Con qué frecuencia te has sentido nervioso/a o estresado/a?"},
			{ID: 4, Text: "¿Con qué frecuencia has sentido confianza en tu capacidad para manejar tus problemas personales?", IsInverse: true},
			{ID: 5, Text: "¿Con qué frecuencia has sentido que las cosas te iban bien?", IsInverse: true},
			{ID: 6, Text: "¿Con qué frecuencia has sentido que no podías afrontar todas las cosas que tenías que hacer?"},
			{ID: 7, Text: "¿Con qué frecuencia has podido controlar las dificultades de tu vida?", IsInverse: true},
			{ID: 8, Text: "¿Con qué frecuencia has sentido que tenías todo bajo control?", IsInverse: true},
			{ID: 9, Text: "¿Con qué frecuencia has estado enfadado/a porque las cosas que te han ocurrido estaban fuera de tu control?"},
			{ID: 10, Text: "¿Con qué frecuencia has sentido que las dificultades se acumulaban tanto que no podías superarlas?"},
		},
		Bands: []Interpretation{
			{Min: 0, Max: 13, Label: "Estrés Bajo", Action: "¡Vas bien! Mantén tus hábitos."},
			{Min: 14, Max: 26, Label: "Estrés Moderado", Action: "Tómate un descanso y prueba una meditación guiada."},
			{Min: 27, Max: 40, Label: "Estrés Alto", Action: "Es importante que busques apoyo y priorices tu descanso."},
		},
	},
	{
		ID:              "who-5",
		Title:           "Índice de Bienestar (WHO-5)",
		Description:     "Una breve evaluación de tu bienestar emocional general.",
		Instructions:    "Indica cómo te has sentido en las últimas 2 semanas.",
		MinScore:        0,
		MaxScore:        100,
		ScoreMultiplier: 4,
		Options: []TestOption{
			{Label: "En ningún momento", Value: 0},
			{Label: "Algo del tiempo", Value: 1},
			{Label: "Menos de la mitad del tiempo", Value: 2},
			{Label: "Más de la mitad del tiempo", Value: 3},
			{Label: "La mayor parte del tiempo", Value: 4},
			{Label: "Todo el tiempo", Value: 5},
		},
		Questions: []TestQuestion{
			{ID: 1, Text: "Me he sentido alegre y de buen ánimo"},
			{ID: 2, Text: "Me he sentido tranquilo/a y relajado/a"},
			{ID: 3, Text: "Me he sentido activo/a y con energía"},
			{ID: 4, Text: "Me he despertado fresco/a y descansado/a"},
			{ID: 5, Text: "Mi vida diaria ha estado llena de cosas que me interesan"},
		},
		Bands: []Interpretation{
			{Min: 0, Max: 50, Label: "Bienestar Bajo", Action: "Podría indicar un estado de ánimo bajo. Busca actividades que disfrutes."},
			{Min: 51, Max: 100, Label: "Bienestar Adecuado", Action: "Tu nivel de bienestar es saludable."},
		},
	},
}

// Tests returns every test definition.
func Tests() []Test {
	out := make([]Test, len(tests))
	copy(out, tests)
	return out
}

// FindTest looks up a test by ID.
func FindTest(id string) (*Test, bool) {
	for i := range tests {
		if tests[i].ID == id {
			return &tests[i], true
		}
	}
	return nil, false
}

// ScoreResult is a scored assessment.
type ScoreResult struct {
	TestID         string          `json:"test_id"`
	Score          int             `json:"score"`
	Interpretation *Interpretation `json:"interpretation"`
}

// Score computes the total for a complete answer set. Answers map question
// IDs to the chosen option value. Inverse items contribute the distance
// from the maximum option value instead of the answer itself.
func Score(testID string, answers map[int]int) (*ScoreResult, error) {
	t, ok := FindTest(testID)
	if !ok {
		return nil, domain.ErrNotFound("unknown test: " + testID)
	}

	if len(answers) != len(t.Questions) {
		return nil, domain.ErrInvalidRequest(fmt.Sprintf("expected %d answers, got %d", len(t.Questions), len(answers)))
	}

	maxValue := t.maxOptionValue()
	total := 0
	for _, q := range t.Questions {
		answer, ok := answers[q.ID]
		if !ok {
			return nil, domain.ErrInvalidRequest(fmt.Sprintf("missing answer for question %d", q.ID))
		}
		if answer < 0 || answer > maxValue {
			return nil, domain.ErrInvalidRequest(fmt.Sprintf("answer for question %d out of range", q.ID))
		}
		if q.IsInverse {
			total += maxValue - answer
		} else {
			total += answer
		}
	}

	if t.ScoreMultiplier > 1 {
		total *= t.ScoreMultiplier
	}

	result := &ScoreResult{TestID: t.ID, Score: total}
	for i := range t.Bands {
		if total >= t.Bands[i].Min && total <= t.Bands[i].Max {
			result.Interpretation = &t.Bands[i]
			break
		}
	}
	return result, nil
}
