package netx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONRequest(t *testing.T) {
	t.Run("with body", func(t *testing.T) {
		req, err := NewJSONRequest(context.Background(), http.MethodPost, "http://x/api/chat", map[string]string{"newMessage": "hi"})
		require.NoError(t, err)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", req.Header.Get("Accept"))

		b, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		var got map[string]string
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, "hi", got["newMessage"])
	})

	t.Run("without body", func(t *testing.T) {
		req, err := NewJSONRequest(context.Background(), http.MethodGet, "http://x/api/community/prompts", nil)
		require.NoError(t, err)
		assert.Empty(t, req.Header.Get("Content-Type"))
		assert.Nil(t, req.Body)
	})

	t.Run("unmarshalable body", func(t *testing.T) {
		_, err := NewJSONRequest(context.Background(), http.MethodPost, "http://x", make(chan int))
		require.Error(t, err)
	})
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		prefix string
		want   string
	}{
		{"error field", 500, `{"error":"boom"}`, "Server responded", "boom"},
		{"unparsable", 500, `<html>oops</html>`, "Server responded", "Server responded with status 500"},
		{"missing field", 404, `{"message":"nope"}`, "Server responded", "Server responded with status 404"},
		{"empty body", 502, ``, "Polling failed", "Polling failed with status 502"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer ts.Close()

			resp, err := http.Get(ts.URL)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.want, ErrorMessage(resp, tt.prefix))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	resp := &http.Response{Body: io.NopCloser(strings.NewReader(`{"reply":"hello"}`))}
	var v struct {
		Reply string `json:"reply"`
	}
	require.NoError(t, DecodeJSON(resp, &v))
	assert.Equal(t, "hello", v.Reply)

	bad := &http.Response{Body: io.NopCloser(strings.NewReader(`{`))}
	require.Error(t, DecodeJSON(bad, &v))
}

func TestIsConnError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := http.Get(url)
	require.Error(t, err)
	assert.True(t, IsConnError(err))

	assert.False(t, IsConnError(nil))
	assert.False(t, IsConnError(errors.New("plain")))
}
