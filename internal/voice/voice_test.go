package voice

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeClip(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF....WAVEfake"), 0644))
	return path
}

func TestUnsupported(t *testing.T) {
	var tr Transcriber = Unsupported{}
	assert.False(t, tr.Available())
	_, err := tr.Transcribe(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestWhisperTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "clip.wav", hdr.Filename)
		assert.Equal(t, "RIFF....WAVEfake", string(data))
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "  Make the body red. "})
	}))
	defer srv.Close()

	w := NewWhisper("sk-test", srv.URL, "", ClipSource{Path: writeClip(t)})
	require.True(t, w.Available())
	text, err := w.Transcribe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Make the body red.", text)
}

func TestWhisperErrorReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer srv.Close()

	w := NewWhisper("bad", srv.URL, "whisper-1", ClipSource{Path: writeClip(t)})
	_, err := w.Transcribe(context.Background())
	assert.ErrorContains(t, err, "401")
	assert.ErrorContains(t, err, "Incorrect API key provided")
}

func TestWhisperEmptyTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text":"   "}`))
	}))
	defer srv.Close()

	w := NewWhisper("k", srv.URL, "", ClipSource{Path: writeClip(t)})
	_, err := w.Transcribe(context.Background())
	assert.ErrorContains(t, err, "no speech")
}

func TestWhisperMissingClip(t *testing.T) {
	w := NewWhisper("k", "http://127.0.0.1:0", "", ClipSource{Path: filepath.Join(t.TempDir(), "none.wav")})
	_, err := w.Transcribe(context.Background())
	assert.ErrorContains(t, err, "no recording")
}

func TestWhisperWithoutKey(t *testing.T) {
	w := NewWhisper("", "", "", ClipSource{Path: "x"})
	assert.False(t, w.Available())
	_, err := w.Transcribe(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestWithTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	tr := WithTimeout(NewWhisper("k", srv.URL, "", ClipSource{Path: writeClip(t)}), 50*time.Millisecond)
	assert.True(t, tr.Available())
	_, err := tr.Transcribe(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var none Transcriber = Unsupported{}
	assert.Equal(t, none, WithTimeout(none, 0))
}
