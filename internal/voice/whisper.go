package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// DefaultWhisperURL is the OpenAI audio transcription endpoint.
const DefaultWhisperURL = "https://api.openai.com/v1/audio/transcriptions"

// Whisper implements Transcriber with an OpenAI-compatible transcription API.
type Whisper struct {
	apiKey   string
	endpoint string
	model    string
	source   AudioSource
	client   *http.Client
}

// NewWhisper returns a Transcriber that uploads recordings from source. An empty
// endpoint or model uses the OpenAI defaults.
func NewWhisper(apiKey, endpoint, model string, source AudioSource) *Whisper {
	if endpoint == "" {
		endpoint = DefaultWhisperURL
	}
	if model == "" {
		model = "whisper-1"
	}
	return &Whisper{
		apiKey:   apiKey,
		endpoint: endpoint,
		model:    model,
		source:   source,
		client:   http.DefaultClient,
	}
}

// Available reports whether an API key is set.
func (w *Whisper) Available() bool {
	return w.apiKey != "" && w.source != nil
}

type whisperResponse struct {
	Text  string `json:"text"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Transcribe uploads one recording and returns the trimmed transcript.
func (w *Whisper) Transcribe(ctx context.Context) (string, error) {
	if !w.Available() {
		return "", ErrUnsupported
	}
	audio, name, err := w.source.Open()
	if err != nil {
		return "", err
	}
	defer audio.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model", w.model); err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}
	part, err := mw.CreateFormFile("file", filepath.Base(name))
	if err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("whisper: read recording: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+w.apiKey)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}
	defer resp.Body.Close()

	var out whisperResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)
	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("whisper: %s: %s", resp.Status, out.Error.Message)
		}
		return "", fmt.Errorf("whisper: %s", resp.Status)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("whisper: decode response: %w", decodeErr)
	}
	text := strings.TrimSpace(out.Text)
	if text == "" {
		return "", fmt.Errorf("whisper: no speech detected")
	}
	return text, nil
}
