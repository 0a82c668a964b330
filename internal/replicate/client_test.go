package replicate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI simulates the predictions endpoint: a create call followed by
// a configurable sequence of status polls.
type fakeAPI struct {
	mu          sync.Mutex
	createBody  createRequest
	pollCount   int
	pollResults []prediction
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/predictions", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&f.createBody))
		assert.Contains(t, r.Header.Get("Authorization"), "Token ")
		writeJSON(w, http.StatusCreated, prediction{ID: "p1", Status: "starting"})
	})
	mux.HandleFunc("GET /v1/predictions/p1", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		i := f.pollCount
		if i >= len(f.pollResults) {
			i = len(f.pollResults) - 1
		}
		f.pollCount++
		writeJSON(w, http.StatusOK, f.pollResults[i])
	})
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(baseURL, "test-token", "stability-ai/sdxl:deadbeef", time.Millisecond, zerolog.Nop())
}

func TestGenerate_Success(t *testing.T) {
	api := &fakeAPI{pollResults: []prediction{
		{ID: "p1", Status: "processing"},
		{ID: "p1", Status: "succeeded", Output: []string{"https://example/img.png"}},
	}}
	ts := httptest.NewServer(api.handler(t))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	urls, err := c.Generate(context.Background(), GenerationInput{
		Prompt: "a red fox in snow",
		Width:  768, Height: 768,
		NumInferenceSteps: 50,
		GuidanceScale:     7.5,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"https://example/img.png"}, urls)

	// Only the version hash goes on the wire.
	assert.Equal(t, "deadbeef", api.createBody.Version)
	assert.Equal(t, "a red fox in snow", api.createBody.Input.Prompt)
	assert.Equal(t, 50, api.createBody.Input.NumInferenceSteps)
}

func TestGenerate_Failed(t *testing.T) {
	api := &fakeAPI{pollResults: []prediction{
		{ID: "p1", Status: "failed", Error: "NSFW content detected"},
	}}
	ts := httptest.NewServer(api.handler(t))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.Generate(context.Background(), GenerationInput{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NSFW content detected")
}

func TestGenerate_Canceled(t *testing.T) {
	api := &fakeAPI{pollResults: []prediction{
		{ID: "p1", Status: "canceled"},
	}}
	ts := httptest.NewServer(api.handler(t))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.Generate(context.Background(), GenerationInput{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canceled")
}

func TestGenerate_EmptyOutput(t *testing.T) {
	api := &fakeAPI{pollResults: []prediction{
		{ID: "p1", Status: "succeeded", Output: []string{}},
	}}
	ts := httptest.NewServer(api.handler(t))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.Generate(context.Background(), GenerationInput{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no output")
}

func TestGenerate_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, apiError{Detail: "Invalid token."})
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.Generate(context.Background(), GenerationInput{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid token.")
}

func TestGenerate_ContextCanceled(t *testing.T) {
	// The prediction never leaves "processing"; the caller's context is
	// the only bound on the wait.
	api := &fakeAPI{pollResults: []prediction{
		{ID: "p1", Status: "processing"},
	}}
	ts := httptest.NewServer(api.handler(t))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	c := newTestClient(t, ts.URL)
	_, err := c.Generate(ctx, GenerationInput{Prompt: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClient_BareVersionHash(t *testing.T) {
	c := NewClient("https://api.replicate.com", "tok", "cafebabe", time.Second, zerolog.Nop())
	assert.Equal(t, "cafebabe", c.version)
}
