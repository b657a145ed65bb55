package email

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunalaswar/HireFlow/internal/config"
)

func newTestBrevo(serverURL string) *BrevoProvider {
	return NewBrevoProvider(config.EmailConfig{
		APIKey:     "test-key",
		APIBaseURL: serverURL,
		FromEmail:  "noreply@hireflow.test",
		FromName:   "HireFlow",
		Timeout:    2 * time.Second,
	})
}

func TestBrevoSend(t *testing.T) {
	var gotPayload brevoPayload
	var gotAPIKey, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("api-key")
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotPayload)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	p := newTestBrevo(srv.URL)
	err := p.Send(context.Background(), Message{
		ToEmail:  "candidate@example.com",
		ToName:   "Jane Doe",
		Subject:  "Application received",
		HTMLBody: "<p>hello</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotAPIKey)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "noreply@hireflow.test", gotPayload.Sender.Email)
	require.Len(t, gotPayload.To, 1)
	assert.Equal(t, "candidate@example.com", gotPayload.To[0].Email)
	assert.Equal(t, "Application received", gotPayload.Subject)
	assert.Equal(t, "<p>hello</p>", gotPayload.HTMLContent)
}

func TestBrevoSendNon2xxFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid api key"}`))
	}))
	defer srv.Close()

	p := newTestBrevo(srv.URL)
	err := p.Send(context.Background(), Message{ToEmail: "x@y.com", Subject: "s", HTMLBody: "b"})
	assert.Error(t, err)
}

func TestMailerRendersTrackingCode(t *testing.T) {
	var got brevoPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewMailerWithProvider(newTestBrevo(srv.URL), "https://jobs.hireflow.test")
	err := m.SendApplicationReceived(context.Background(), "c@example.com", "Jane", "Backend Engineer", "HF-0042")
	require.NoError(t, err)

	assert.Contains(t, got.HTMLContent, "HF-0042")
	assert.Contains(t, got.HTMLContent, "Backend Engineer")
	assert.Contains(t, got.HTMLContent, "https://jobs.hireflow.test/track/HF-0042")
}
