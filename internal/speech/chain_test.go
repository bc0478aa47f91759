package speech

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenia-app/serenia/internal/domain"
)

type fakeEngine struct {
	name      string
	available bool
	audio     []byte
	mediaType string
	err       error
	calls     int
}

func (f *fakeEngine) Name() string    { return f.name }
func (f *fakeEngine) Available() bool { return f.available }

func (f *fakeEngine) Synthesize(context.Context, string) ([]byte, string, error) {
	f.calls++
	if f.err != nil {
		return nil, "", f.err
	}
	return f.audio, f.mediaType, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChainFirstAvailableWins(t *testing.T) {
	remote := &fakeEngine{name: "remote", available: true, audio: []byte("mp3"), mediaType: "audio/mpeg"}
	local := &fakeEngine{name: "local", available: true, audio: []byte("wav"), mediaType: "audio/wav"}
	chain := NewChain(discardLogger(), remote, local)

	audio, contentType, err := chain.Synthesize(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), audio)
	assert.Equal(t, "audio/mpeg", contentType)
	assert.Equal(t, 0, local.calls)
}

func TestChainSkipsUnavailable(t *testing.T) {
	remote := &fakeEngine{name: "remote", available: false}
	local := &fakeEngine{name: "local", available: true, audio: []byte("wav"), mediaType: "audio/wav"}
	chain := NewChain(discardLogger(), remote, local)

	audio, contentType, err := chain.Synthesize(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, []byte("wav"), audio)
	assert.Equal(t, "audio/wav", contentType)
	assert.Equal(t, 0, remote.calls)
}

func TestChainFallsBackOnFailure(t *testing.T) {
	remote := &fakeEngine{name: "remote", available: true, err: errors.New("upstream 500")}
	local := &fakeEngine{name: "local", available: true, audio: []byte("wav"), mediaType: "audio/wav"}
	chain := NewChain(discardLogger(), remote, local)

	audio, _, err := chain.Synthesize(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, []byte("wav"), audio)
	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, 1, local.calls)
}

func TestChainExhausted(t *testing.T) {
	remote := &fakeEngine{name: "remote", available: false}
	local := &fakeEngine{name: "local", available: true, err: errors.New("binary missing")}
	chain := NewChain(discardLogger(), remote, local)

	_, _, err := chain.Synthesize(context.Background(), "hola")
	require.Error(t, err)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, domain.ErrorTypeProviderExhausted, apiErr.Type)
}
