package elevenlabs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize(t *testing.T) {
	audio := []byte{0xff, 0xfb, 0x90, 0x00}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/voice-123", r.URL.Path)
		assert.Equal(t, "secret-key", r.Header.Get("xi-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req SynthesizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hola mundo", req.Text)
		assert.Equal(t, "eleven_multilingual_v2", req.ModelID)
		assert.InDelta(t, 0.5, req.VoiceSettings.Stability, 1e-9)
		assert.InDelta(t, 0.75, req.VoiceSettings.SimilarityBoost, 1e-9)

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(audio)
	}))
	defer server.Close()

	client := NewClient("secret-key", WithBaseURL(server.URL))
	got, err := client.Synthesize(context.Background(), "voice-123", &SynthesizeRequest{
		Text:    "hola mundo",
		ModelID: "eleven_multilingual_v2",
		VoiceSettings: VoiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, audio, got)
}

func TestSynthesizeStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid api key"}`))
	}))
	defer server.Close()

	client := NewClient("bad-key", WithBaseURL(server.URL))
	_, err := client.Synthesize(context.Background(), "voice-123", &SynthesizeRequest{Text: "hola"})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "invalid api key")
}
