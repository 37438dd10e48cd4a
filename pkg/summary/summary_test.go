package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mayank-jangid007/CouseHub/pkg/core"
)

func sampleResult() core.Result {
	return core.NewResult("repo-1", "awesome-go", "A curated list of Go frameworks.",
		"https://github.com/avelino/awesome-go", nil, time.Now(), core.RepoMeta{Stars: 100000})
}

func TestGenerateWithoutKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made without an API key")
	}))
	defer server.Close()

	c := NewClient("", server.URL, "")
	if c.Enabled() {
		t.Error("client without key should be disabled")
	}
	if got := c.Generate(context.Background(), sampleResult()); got != NotConfigured {
		t.Errorf("Generate = %q, want NotConfigured placeholder", got)
	}
}

func TestGenerateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("got %d messages, want system plus user", len(req.Messages))
		}

		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: "A huge curated index of Go libraries."}},
			},
		})
	}))
	defer server.Close()

	c := NewClient("test-key", server.URL, "test-model")
	got := c.Generate(context.Background(), sampleResult())
	if got != "A huge curated index of Go libraries." {
		t.Errorf("Generate = %q", got)
	}
}

func TestGenerateDegradesOnError(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
		{
			name: "empty choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"choices":[]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			c := NewClient("test-key", server.URL, "")
			if got := c.Generate(context.Background(), sampleResult()); got != Unavailable {
				t.Errorf("Generate = %q, want Unavailable placeholder", got)
			}
		})
	}
}

func TestGenerateUnreachableEndpoint(t *testing.T) {
	c := NewClient("test-key", "http://127.0.0.1:0/never", "")
	if got := c.Generate(context.Background(), sampleResult()); got != Unavailable {
		t.Errorf("Generate = %q, want Unavailable placeholder", got)
	}
}
