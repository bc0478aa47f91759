package domain

import "time"

// Entry is a journal entry. The attached analysis, when present, is stored
// verbatim and never re-validated on read.
type Entry struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	Content           string          `json:"content"`
	Emotion           Emotion         `json:"emotion"`
	SecondaryEmotions []Emotion       `json:"secondary_emotions"`
	Intensity         int             `json:"intensity"`
	Tags              []string        `json:"tags"`
	Analysis          *AnalysisResult `json:"ai_analysis,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ApplyAnalysis overwrites the entry's emotion, secondary emotions and
// intensity with the analysis values. Secondary emotions are the next two
// ranked emotions after the primary. This is only ever invoked by an explicit
// user action, never automatically.
func (e *Entry) ApplyAnalysis(a *AnalysisResult) {
	if a == nil {
		return
	}
	e.Emotion = a.Primary
	e.SecondaryEmotions = nil
	if len(a.Emotions) > 1 {
		rest := a.Emotions[1:]
		if len(rest) > 2 {
			rest = rest[:2]
		}
		for _, r := range rest {
			e.SecondaryEmotions = append(e.SecondaryEmotions, r.Emotion)
		}
	}
	if len(a.Emotions) > 0 {
		e.Intensity = a.Emotions[0].Intensity
	}
}

// Booking is a request for a session with a wellbeing professional.
type Booking struct {
	ID        string    `json:"id"`
	Pro       string    `json:"pro"`
	Hora      string    `json:"hora"`
	CreatedAt time.Time `json:"created"`
}
