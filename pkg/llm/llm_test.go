package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"text_trans_api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguageCode(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
		wantOk bool
	}{
		{name: "bare code", output: "es", want: "es", wantOk: true},
		{name: "bare code with whitespace", output: "  fr\n", want: "fr", wantOk: true},
		{name: "uppercase code", output: "DE", want: "de", wantOk: true},
		{name: "backtick quoted", output: "The code is `ja`", want: "ja", wantOk: true},
		{name: "labeled", output: "language: ko", want: "ko", wantOk: true},
		{name: "code inside sentence", output: "zh (Chinese)", want: "zh", wantOk: true},
		{name: "no code at all", output: "1234 5678", want: "en", wantOk: false},
		{name: "empty output", output: "", want: "en", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLanguageCode(tt.output)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOk, ok)
		})
	}
}

func completionServer(t *testing.T, reply string, capture *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		response := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}))
}

func TestTranslate(t *testing.T) {
	var captured chatRequest
	server := completionServer(t, "  Hola mundo\n", &captured)
	defer server.Close()
	config.Cfg.OpenAI.BaseUrl = server.URL

	got, err := Translate(context.Background(), "English", "Spanish", "Hello world")
	require.NoError(t, err)
	assert.Equal(t, "Hola mundo", got)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, "English")
	assert.Contains(t, captured.Messages[0].Content, "Spanish")
	assert.Equal(t, "Hello world", captured.Messages[1].Content)
}

func TestTranslateUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()
	config.Cfg.OpenAI.BaseUrl = server.URL

	_, err := Translate(context.Background(), "English", "Spanish", "Hello")
	assert.Error(t, err)
}

func TestDetectTruncatesSample(t *testing.T) {
	var captured chatRequest
	server := completionServer(t, "en", &captured)
	defer server.Close()
	config.Cfg.OpenAI.BaseUrl = server.URL

	long := ""
	for i := 0; i < 40; i++ {
		long += "abc "
	}

	code, err := Detect(context.Background(), long)
	require.NoError(t, err)
	assert.Equal(t, "en", code)
	assert.LessOrEqual(t, len([]rune(captured.Messages[1].Content)), detectSampleLimit)
}

func TestDetectDefaultsToEnglish(t *testing.T) {
	server := completionServer(t, "I cannot determine that.", nil)
	defer server.Close()
	config.Cfg.OpenAI.BaseUrl = server.URL

	code, err := Detect(context.Background(), "mystery text")
	require.NoError(t, err)
	assert.Equal(t, "en", code)
}
