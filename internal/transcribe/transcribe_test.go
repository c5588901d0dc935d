package transcribe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr error
	}{
		{name: "empty", size: 0, wantErr: ErrEmptyAudio},
		{name: "one byte", size: 1, wantErr: nil},
		{name: "exactly at ceiling", size: MaxAudioBytes, wantErr: nil},
		{name: "one byte over ceiling", size: MaxAudioBytes + 1, wantErr: ErrAudioTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSize(tt.size)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tt.wantErr))
			}
		})
	}
}

func TestWhisperTranscriber_RejectsBeforeAPICall(t *testing.T) {
	tr, err := NewWhisperTranscriber("sk-test")
	require.NoError(t, err)

	_, err = tr.Transcribe(context.Background(), nil, "audio.webm")
	assert.True(t, errors.Is(err, ErrEmptyAudio))

	_, err = tr.Transcribe(context.Background(), make([]byte, MaxAudioBytes+1), "audio.webm")
	assert.True(t, errors.Is(err, ErrAudioTooLarge))
}

func TestNewWhisperTranscriber_RequiresAPIKey(t *testing.T) {
	_, err := NewWhisperTranscriber("")
	assert.Error(t, err)
}
