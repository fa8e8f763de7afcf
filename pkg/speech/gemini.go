package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when GeminiConfig.Model is empty.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiConfig configures the Gemini-backed recognizer.
type GeminiConfig struct {
	APIKey    string
	Model     string
	AudioPath string // Recorded audio to transcribe.
}

// Gemini transcribes a recorded audio file with the Gemini API, streaming the response
// so the transcript grows while the model produces it.
type Gemini struct {
	client    *genai.Client
	model     string
	audioPath string
}

// NewGemini creates a Gemini recognizer.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Gemini{
		client:    client,
		model:     cfg.Model,
		audioPath: cfg.AudioPath,
	}, nil
}

// Available reports whether there is audio to transcribe.
func (g *Gemini) Available() bool {
	if g == nil || g.client == nil || g.audioPath == "" {
		return false
	}
	info, err := os.Stat(g.audioPath)
	return err == nil && !info.IsDir()
}

func (g *Gemini) Start(ctx context.Context, cfg Config, h Handlers) (Session, error) {
	if !g.Available() {
		return nil, ErrUnavailable
	}

	data, err := os.ReadFile(g.audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	mime := audioMIME(g.audioPath)

	return startSession(ctx, cfg, h, func(ctx context.Context, emit emitFunc) error {
		contents := []*genai.Content{
			genai.NewContentFromParts([]*genai.Part{
				genai.NewPartFromText(transcriptionPrompt(cfg.Language)),
				genai.NewPartFromBytes(data, mime),
			}, genai.RoleUser),
		}

		for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, contents, nil) {
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				return fmt.Errorf("GenAI transcription failed: %w", err)
			}
			if chunk := resp.Text(); chunk != "" {
				emit(Segment{Text: chunk, Final: true})
			}
		}
		return nil
	}), nil
}

// Name returns the engine name.
func (g *Gemini) Name() string {
	return fmt.Sprintf("genai:%s", g.model)
}

func transcriptionPrompt(language string) string {
	if language == "" {
		language = DefaultLanguage
	}
	return fmt.Sprintf("Transcribe this audio verbatim. The speaker uses %s. "+
		"Reply with the transcript only, without commentary.", language)
}

func audioMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return "audio/mp3"
	case ".ogg", ".oga", ".opus":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	case ".aac", ".m4a":
		return "audio/aac"
	case ".aiff", ".aif":
		return "audio/aiff"
	case ".webm":
		return "audio/webm"
	default:
		return "audio/wav"
	}
}
