package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"electionportal/contexts/notifications/webhook-service/domain/entities"
)

func TestDeliverSuccess(t *testing.T) {
	var received []byte
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received = body
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	payload, _ := json.Marshal(map[string]string{"event": "form_submitted"})
	result := NewDeliverer().Deliver(context.Background(), server.URL, payload)

	if result.Outcome != entities.OutcomeSuccess {
		t.Fatalf("expected success, got %s (%s)", result.Outcome, result.Detail)
	}
	if result.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", result.StatusCode)
	}
	if contentType != "application/json" {
		t.Fatalf("expected JSON content type, got %q", contentType)
	}
	if string(received) != string(payload) {
		t.Fatalf("expected payload to arrive unchanged, got %s", received)
	}
}

func TestDeliverClassifiesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	result := NewDeliverer().Deliver(context.Background(), server.URL, []byte(`{}`))

	if result.Outcome != entities.OutcomeHTTPError {
		t.Fatalf("expected http_error, got %s", result.Outcome)
	}
	if result.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", result.StatusCode)
	}
}

func TestDeliverClassifiesNon2xxAsHTTPError(t *testing.T) {
	cases := []struct {
		name   string
		status int
	}{
		{"not modified", http.StatusNotModified},
		{"see other", http.StatusSeeOther},
		{"accepted stays success", http.StatusAccepted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			result := NewDeliverer().Deliver(context.Background(), server.URL, []byte(`{}`))

			want := entities.OutcomeHTTPError
			if tc.status >= 200 && tc.status < 300 {
				want = entities.OutcomeSuccess
			}
			if result.Outcome != want {
				t.Fatalf("status %d: expected %s, got %s", tc.status, want, result.Outcome)
			}
			if result.StatusCode != tc.status {
				t.Fatalf("expected status %d recorded, got %d", tc.status, result.StatusCode)
			}
		})
	}
}

func TestDeliverClassifiesTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		server.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result := NewDeliverer().Deliver(ctx, server.URL, []byte(`{}`))

	if result.Outcome != entities.OutcomeTimeout {
		t.Fatalf("expected timeout, got %s (%s)", result.Outcome, result.Detail)
	}
}

func TestDeliverClassifiesConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	target := server.URL
	server.Close()

	result := NewDeliverer().Deliver(context.Background(), target, []byte(`{}`))

	if result.Outcome != entities.OutcomeConnectionError {
		t.Fatalf("expected connection_error, got %s (%s)", result.Outcome, result.Detail)
	}
}
