package speech

import (
	"context"

	"github.com/serenia-app/serenia/internal/api/elevenlabs"
)

const (
	// Tuning mirrors the voice profile the product ships with.
	remoteStability       = 0.5
	remoteSimilarityBoost = 0.75
)

// Remote synthesizes speech through the ElevenLabs API.
type Remote struct {
	client  *elevenlabs.Client
	voiceID string
	modelID string
	hasKey  bool
}

// NewRemote creates an ElevenLabs-backed engine. The engine reports itself
// unavailable when no API key was configured.
func NewRemote(client *elevenlabs.Client, voiceID, modelID string, hasKey bool) *Remote {
	return &Remote{
		client:  client,
		voiceID: voiceID,
		modelID: modelID,
		hasKey:  hasKey,
	}
}

func (r *Remote) Name() string { return "elevenlabs" }

func (r *Remote) Available() bool { return r.hasKey }

func (r *Remote) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	audio, err := r.client.Synthesize(ctx, r.voiceID, &elevenlabs.SynthesizeRequest{
		Text:    text,
		ModelID: r.modelID,
		VoiceSettings: elevenlabs.VoiceSettings{
			Stability:       remoteStability,
			SimilarityBoost: remoteSimilarityBoost,
		},
	})
	if err != nil {
		return nil, "", err
	}
	return audio, "audio/mpeg", nil
}
