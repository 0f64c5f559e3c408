package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

func TestGenerate_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}
		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Model != "Qwen/Qwen2.5-7B-Instruct" || payload.MaxTokens != 200 || payload.Temperature != 0.3 {
			t.Fatalf("unexpected payload %+v", payload)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"choices":[{"message":{"content":"Key Decisions:\nShip it"}}]}`))
	}))
	defer ts.Close()

	client := NewChatClient(&config.LLMConfig{BaseURL: ts.URL + "/", APIKey: "test-key"})
	out, err := client.Generate(context.Background(), Qwen(), "prompt", GenerateOptions{Temperature: 0.3, MaxTokens: 200})
	require.NoError(t, err)
	assert.Equal(t, "Key Decisions:\nShip it", out)
}

func TestGenerate_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewChatClient(&config.LLMConfig{BaseURL: ts.URL})
	_, err := client.Generate(context.Background(), Llama(), "prompt", GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestGenerate_EmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	client := NewChatClient(&config.LLMConfig{BaseURL: ts.URL})
	_, err := client.Generate(context.Background(), Qwen(), "prompt", GenerateOptions{})
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		model   Model
		wantErr bool
	}{
		{"served", `{"data":[{"id":"Qwen/Qwen2.5-7B-Instruct"}]}`, 200, Qwen(), false},
		{"empty list accepted", `{"data":[]}`, 200, Llama(), false},
		{"not served", `{"data":[{"id":"other"}]}`, 200, Llama(), true},
		{"server error", `{}`, 500, Qwen(), true},
		{"malformed", `not json`, 200, Qwen(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/models" {
					t.Fatalf("unexpected path %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			err := NewChatClient(&config.LLMConfig{BaseURL: ts.URL}).Ping(context.Background(), tt.model)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
