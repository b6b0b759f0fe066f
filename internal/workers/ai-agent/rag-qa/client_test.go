// internal/workers/ai-agent/rag-qa/client_test.go
package ragqa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "rag-agent-connector/internal/common/errors"
	"rag-agent-connector/internal/common/logger"
)

func testRequest() *AgentRequest {
	return NewAgentRequest(&Input{
		Question:  "What is the refund policy?",
		LLMApiKey: "sk-test",
	}, "")
}

func TestHTTPAgentClient_Send_Success(t *testing.T) {
	var gotAuth, gotContentType, gotAccept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")

		var wire map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&wire))
		assert.Equal(t, "rag_qa", wire["task"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok", "output": {"answer": "5 business days.", "confidence": 0.92}}`))
	}))
	defer server.Close()

	client := NewHTTPAgentClient(server.URL, "abc", 5*time.Second, nil, logger.NewTestLogger(t))

	resp, err := client.Send(context.Background(), testRequest())

	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, "5 business days.", resp.Answer)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "application/json", gotAccept)
}

func TestHTTPAgentClient_Send_NoAuthHeaderWhenTokenBlank(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"whitespace", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sawAuthHeader bool
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, sawAuthHeader = r.Header["Authorization"]
				w.Write([]byte(`{"status": "ok", "output": {"answer": "Yes."}}`))
			}))
			defer server.Close()

			client := NewHTTPAgentClient(server.URL, tt.token, 5*time.Second, nil, logger.NewTestLogger(t))

			_, err := client.Send(context.Background(), testRequest())

			require.NoError(t, err)
			assert.False(t, sawAuthHeader)
		})
	}
}

func TestHTTPAgentClient_Send_TimeoutIsHandled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(10 * time.Second):
			return
		}
	}))
	defer server.Close()

	client := NewHTTPAgentClient(server.URL, "", 50*time.Millisecond, nil, logger.NewTestLogger(t))

	resp, err := client.Send(context.Background(), testRequest())

	// A timeout never fails the job; it maps to an error-status response.
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.IsError())
	assert.Equal(t, string(cerrors.ErrCodeAgentTimeout), resp.ErrorCode)
	assert.Contains(t, resp.ErrorMessage, "timed out")
}

func TestHTTPAgentClient_Send_TimeoutDuringBodyReadIsHandled(t *testing.T) {
	// Headers arrive in time but the body stalls past the deadline; the
	// expiry must map to the same handled timeout as a stalled connect.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok", "output": {"answer": "`))
		w.(http.Flusher).Flush()

		select {
		case <-r.Context().Done():
		case <-time.After(10 * time.Second):
		}
	}))
	defer server.Close()

	client := NewHTTPAgentClient(server.URL, "", 200*time.Millisecond, nil, logger.NewTestLogger(t))

	resp, err := client.Send(context.Background(), testRequest())

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.IsError())
	assert.Equal(t, string(cerrors.ErrCodeAgentTimeout), resp.ErrorCode)
}

func TestHTTPAgentClient_Send_UnreachableIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewHTTPAgentClient(server.URL, "", 5*time.Second, nil, logger.NewTestLogger(t))

	resp, err := client.Send(context.Background(), testRequest())

	require.Error(t, err)
	assert.Nil(t, resp)

	stdErr, ok := err.(*cerrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, cerrors.ErrCodeAgentUnreachable, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestHTTPAgentClient_Send_HTTPErrorMapsToResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewHTTPAgentClient(server.URL, "", 5*time.Second, nil, logger.NewTestLogger(t))

	resp, err := client.Send(context.Background(), testRequest())

	require.NoError(t, err)
	assert.True(t, resp.IsError())
	assert.Equal(t, string(cerrors.ErrCodeInternal), resp.ErrorCode)
	assert.Contains(t, resp.ErrorMessage, "500")
}

func TestHTTPAgentClient_Send_NotConfigured(t *testing.T) {
	client := NewHTTPAgentClient("", "", 5*time.Second, nil, logger.NewTestLogger(t))

	assert.False(t, client.IsConfigured())

	resp, err := client.Send(context.Background(), testRequest())

	require.Error(t, err)
	assert.Nil(t, resp)
}

func TestHTTPAgentClient_Send_CancelledContextIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(10 * time.Second):
		}
	}))
	defer server.Close()

	client := NewHTTPAgentClient(server.URL, "", 5*time.Second, nil, logger.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	resp, err := client.Send(ctx, testRequest())

	require.Error(t, err)
	assert.Nil(t, resp)

	stdErr, ok := err.(*cerrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, cerrors.ErrCodeInternal, stdErr.Code)
}
