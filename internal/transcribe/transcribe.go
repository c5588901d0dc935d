// Package transcribe converts uploaded audio clips to text.
package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// MaxAudioBytes is the upload size ceiling (10 MiB).
const MaxAudioBytes = 10 << 20

var (
	// ErrEmptyAudio is returned for a zero-length upload.
	ErrEmptyAudio = errors.New("empty audio file")
	// ErrAudioTooLarge is returned when the upload exceeds MaxAudioBytes.
	ErrAudioTooLarge = errors.New("audio file too large")
)

// Transcriber converts an audio byte buffer into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// WhisperTranscriber transcribes audio through the OpenAI Whisper API.
type WhisperTranscriber struct {
	client openai.Client
}

func NewWhisperTranscriber(apiKey string) (*WhisperTranscriber, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not configured")
	}
	return &WhisperTranscriber{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// Transcribe validates the buffer, sends it to Whisper, and returns the text
// trimmed of surrounding whitespace. The filename is a hint for format
// detection; content-type policy is enforced by the HTTP layer before this
// is called.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if err := ValidateSize(len(audio)); err != nil {
		return "", err
	}
	if filename == "" {
		filename = "audio.webm"
	}

	transcription, err := t.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModelWhisper1,
		File:  openai.File(bytes.NewReader(audio), filename, "application/octet-stream"),
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}

	return strings.TrimSpace(transcription.Text), nil
}

// ValidateSize applies the emptiness and size-ceiling checks.
func ValidateSize(n int) error {
	if n == 0 {
		return ErrEmptyAudio
	}
	if n > MaxAudioBytes {
		return ErrAudioTooLarge
	}
	return nil
}
