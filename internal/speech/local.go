package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

const espeakBinary = "espeak-ng"

// Local synthesizes speech with the espeak-ng binary. It is the fallback
// engine for installs without remote credentials.
type Local struct {
	voice string
}

// NewLocal creates an espeak-ng engine using the given voice, e.g. "es".
func NewLocal(voice string) *Local {
	if voice == "" {
		voice = "es"
	}
	return &Local{voice: voice}
}

func (l *Local) Name() string { return "espeak-ng" }

// Available probes PATH for the binary.
func (l *Local) Available() bool {
	_, err := exec.LookPath(espeakBinary)
	return err == nil
}

func (l *Local) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	cmd := exec.CommandContext(ctx, espeakBinary, "--stdout", "-v", l.voice, text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, "", fmt.Errorf("%s failed: %w: %s", espeakBinary, err, stderr.String())
	}
	return stdout.Bytes(), "audio/wav", nil
}
