// Package speech turns text into audio. Engines are tried in order until
// one succeeds, so a remote voice can degrade to a local one when the
// remote service is unconfigured or failing.
package speech

import "context"

// Synthesizer produces audio for a piece of text.
type Synthesizer interface {
	// Name identifies the engine in logs.
	Name() string
	// Available reports whether the engine can be attempted at all, for
	// example whether credentials are configured or a binary is installed.
	Available() bool
	// Synthesize renders text to audio and reports the media type of the
	// returned bytes.
	Synthesize(ctx context.Context, text string) (audio []byte, contentType string, err error)
}
