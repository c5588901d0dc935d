package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/lead-intake/internal/logger"
	"github.com/jonesrussell/lead-intake/internal/models"
	"github.com/jonesrussell/lead-intake/internal/transcribe"
)

type TranscribeHandler struct {
	transcriber transcribe.Transcriber
	logger      logger.Logger
}

func NewTranscribeHandler(t transcribe.Transcriber, log logger.Logger) *TranscribeHandler {
	return &TranscribeHandler{
		transcriber: t,
		logger:      log,
	}
}

// Upload handles POST /transcribe: a multipart upload under field "audio".
// MediaRecorder clients send a mix of audio/* and video/* content types, and
// some omit the type entirely, so anything plausibly audio passes through;
// only a type that is neither audio nor video nor absent is rejected here.
func (h *TranscribeHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No audio file provided"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "audio/") && !strings.HasPrefix(contentType, "video/") {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid file type: " + contentType + ". Please upload an audio file.",
		})
		return
	}

	if fileHeader.Size > transcribe.MaxAudioBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Audio file too large (max 10MB)."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open audio upload", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to transcribe audio. Please try again."})
		return
	}
	defer func() { _ = file.Close() }()

	audio, err := io.ReadAll(io.LimitReader(file, transcribe.MaxAudioBytes+1))
	if err != nil {
		h.logger.Error("Failed to read audio upload", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to transcribe audio. Please try again."})
		return
	}

	text, err := h.transcriber.Transcribe(c.Request.Context(), audio, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, transcribe.ErrEmptyAudio):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Empty audio file received."})
		case errors.Is(err, transcribe.ErrAudioTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Audio file too large (max 10MB)."})
		default:
			h.logger.Error("Transcription failed",
				logger.String("filename", fileHeader.Filename),
				logger.Int("size_bytes", int(fileHeader.Size)),
				logger.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to transcribe audio. Please try again."})
		}
		return
	}

	c.JSON(http.StatusOK, models.TranscribeResponse{
		Status: "ok",
		Text:   text,
	})
}
