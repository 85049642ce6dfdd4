package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
	"github.com/sergeifrante-boop/voice-diarty/internal/service/transcribe"
	"github.com/sergeifrante-boop/voice-diarty/pkg/ctxutil"
)

type transcribeService interface {
	Transcribe(ctx context.Context, input transcribe.Input) (string, error)
}

// TranscribeHandler accepts an audio upload and returns its transcript.
// Audio is processed in temporary files only and never persisted.
type TranscribeHandler struct {
	log *slog.Logger
	svc transcribeService
}

func NewTranscribeHandler(logger *slog.Logger, svc transcribeService) *TranscribeHandler {
	return &TranscribeHandler{
		log: logger.With("handler", "transcribe"),
		svc: svc,
	}
}

type transcribeResponse struct {
	Transcript string `json:"transcript"`
}

func (h *TranscribeHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
		writeError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	// Memory threshold only; larger parts spill to disk. The service
	// enforces the actual size cap while staging.
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, r, h.log, domain.NewValidationError("audio", "expected multipart form upload"))
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, r, h.log, domain.NewValidationError("audio", "audio file is required"))
		return
	}
	defer file.Close()

	transcript, err := h.svc.Transcribe(r.Context(), transcribe.Input{
		Filename: header.Filename,
		Size:     header.Size,
		Audio:    file,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, transcribeResponse{Transcript: transcript})
}
