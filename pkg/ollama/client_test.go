package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelOptions(t *testing.T) {
	assert.NotNil(t, modelOptions("openbmb/minicpm-v4.5"))
	assert.Nil(t, modelOptions("llava:13b"))
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient("localhost")
	assert.Error(t, err)

	c, err := NewClient("http://localhost:11434/api/chat")
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestAnalyzeImage(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Content string   `json:"content"`
			Images  [][]byte `json:"images"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"m","message":{"role":"assistant","content":"{\"primary\":{\"label\":\"cat\",\"confidence\":0.8,\"box\":{\"x\":0.5,\"y\":0.5,\"w\":0.2,\"h\":0.2}}}"},"done":true}` + "\n"))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	res, err := c.AnalyzeImage(context.Background(), "m", "find it", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "cat", res.Primary.Label)
	assert.InDelta(t, 0.2, res.Primary.Box.W, 1e-9)

	assert.Equal(t, "m", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "find it", got.Messages[0].Content)
	require.Len(t, got.Messages[0].Images, 1)
	assert.Equal(t, []byte{1, 2, 3}, got.Messages[0].Images[0])
}
