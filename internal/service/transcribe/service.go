// Package transcribe implements the audio-to-transcript pipeline: temp-file
// staging, ffmpeg conversion to Whisper-friendly WAV, speech-to-text and
// LLM post-formatting. Audio is never persisted.
package transcribe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/sergeifrante-boop/voice-diarty/internal/config"
	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
	"github.com/sergeifrante-boop/voice-diarty/internal/provider"
)

// MaxFileSize caps uploads at 50MB.
const MaxFileSize = 50 * 1024 * 1024

// allowedExtensions lists the accepted upload formats.
var allowedExtensions = map[string]bool{
	".webm": true,
	".m4a":  true,
	".mp3":  true,
	".wav":  true,
	".mp4":  true,
	".mpeg": true,
	".mpga": true,
}

// AllowedExtensions returns the accepted extensions, for error messages.
func AllowedExtensions() []string {
	out := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		out = append(out, ext)
	}
	return out
}

// Service converts uploaded audio into a formatted transcript.
type Service struct {
	log         *slog.Logger
	transcriber provider.Transcriber
	analyzer    provider.Analyzer
	cfg         config.AIConfig
}

// NewService creates a new transcription service.
func NewService(
	logger *slog.Logger,
	transcriber provider.Transcriber,
	analyzer provider.Analyzer,
	cfg config.AIConfig,
) *Service {
	return &Service{
		log:         logger.With("service", "transcribe"),
		transcriber: transcriber,
		analyzer:    analyzer,
		cfg:         cfg,
	}
}

// Input holds the uploaded audio stream and its declared metadata.
type Input struct {
	Filename string
	Size     int64
	Audio    io.Reader
}

// Validate checks the upload metadata before any file is staged.
func (i Input) Validate() error {
	var errs []domain.FieldError

	if i.Filename == "" {
		errs = append(errs, domain.FieldError{Field: "file", Message: "missing filename"})
	} else if !allowedExtensions[strings.ToLower(filepath.Ext(i.Filename))] {
		errs = append(errs, domain.FieldError{Field: "file", Message: "unsupported audio format"})
	}
	if i.Size > MaxFileSize {
		errs = append(errs, domain.FieldError{Field: "file", Message: "file too large, maximum is 50MB"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Transcribe runs the full pipeline and returns the formatted transcript.
func (s *Service) Transcribe(ctx context.Context, input Input) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	inputPath, err := s.stageUpload(input)
	if err != nil {
		return "", err
	}
	defer s.cleanup(ctx, inputPath)

	wavPath, err := s.convertToWAV(ctx, inputPath)
	if err != nil {
		return "", err
	}
	defer s.cleanup(ctx, wavPath)

	raw, err := s.transcriber.Transcribe(ctx, wavPath)
	if err != nil {
		return "", fmt.Errorf("transcribe.Transcribe: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "file", Message: "transcription produced empty result"},
		}}
	}

	s.log.InfoContext(ctx, "audio transcribed",
		slog.Int("transcript_chars", len(raw)))

	return s.format(ctx, raw), nil
}

// stageUpload copies the upload into a temp file for ffmpeg.
func (s *Service) stageUpload(input Input) (string, error) {
	ext := strings.ToLower(filepath.Ext(input.Filename))
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	written, err := io.Copy(tmp, io.LimitReader(input.Audio, MaxFileSize+1))
	if cerr := tmp.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("save upload: %w", err)
	}
	if written == 0 {
		os.Remove(tmp.Name())
		return "", &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "file", Message: "uploaded file is empty"},
		}}
	}
	if written > MaxFileSize {
		os.Remove(tmp.Name())
		return "", &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "file", Message: "file too large, maximum is 50MB"},
		}}
	}
	return tmp.Name(), nil
}

// convertToWAV reencodes the audio as 16kHz mono 16-bit PCM WAV, the format
// Whisper transcribes best.
func (s *Service) convertToWAV(ctx context.Context, inputPath string) (string, error) {
	outputPath := filepath.Join(os.TempDir(), uuid.NewString()+".wav")

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", inputPath,
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		"-y",
		outputPath,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		s.log.ErrorContext(ctx, "ffmpeg conversion failed",
			slog.String("error", err.Error()),
			slog.String("output", string(out)))
		return "", fmt.Errorf("audio conversion failed: %w", err)
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		os.Remove(outputPath)
		return "", fmt.Errorf("audio conversion produced empty file")
	}
	return outputPath, nil
}

// format applies LLM post-formatting with a raw-text fallback: a formatting
// failure must never lose a successful transcription.
func (s *Service) format(ctx context.Context, raw string) string {
	if !s.cfg.TranscriptFormatting {
		return raw
	}

	formatted, err := s.analyzer.FormatTranscript(ctx, raw)
	if err != nil {
		s.log.WarnContext(ctx, "transcript formatting failed, using raw text",
			slog.String("error", err.Error()))
		return raw
	}
	formatted = strings.TrimSpace(formatted)
	if formatted == "" {
		s.log.WarnContext(ctx, "formatted transcript is empty, using raw text")
		return raw
	}
	if len(formatted) < len(raw)/2 {
		s.log.WarnContext(ctx, "formatted transcript much shorter than raw, content may be dropped",
			slog.Int("raw_chars", len(raw)),
			slog.Int("formatted_chars", len(formatted)))
	}
	return formatted
}

func (s *Service) cleanup(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.WarnContext(ctx, "failed to remove temp file",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}
}
