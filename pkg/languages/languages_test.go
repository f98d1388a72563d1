package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectHeuristic(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "cyrillic", text: "Привет, как дела?", want: "ru"},
		{name: "han", text: "你好世界", want: "zh"},
		{name: "hiragana", text: "こんにちは", want: "ja"},
		{name: "kana with han", text: "日本語のテキストです", want: "ja"},
		{name: "hangul", text: "안녕하세요", want: "ko"},
		{name: "arabic", text: "مرحبا بالعالم", want: "ar"},
		{name: "hebrew", text: "שלום עולם", want: "he"},
		{name: "devanagari", text: "नमस्ते दुनिया", want: "hi"},
		{name: "thai", text: "สวัสดีครับ", want: "th"},
		{name: "greek", text: "Γεια σου κόσμε", want: "el"},
		{name: "spanish punctuation", text: "¿Cómo estás hoy?", want: "es"},
		{name: "french accents", text: "Ça va très bien, merci", want: "fr"},
		{name: "german letters", text: "Die Straße ist schön", want: "de"},
		{name: "polish letters", text: "Dziękuję bardzo, miłego dnia", want: "pl"},
		{name: "plain latin defaults to english", text: "Hello there, general text", want: "en"},
		{name: "empty input", text: "", want: "en"},
		{name: "digits only", text: "12345 67890", want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := DetectHeuristic(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectHeuristicConfidence(t *testing.T) {
	code, confidence := DetectHeuristic("Привет мир")
	assert.Equal(t, "ru", code)
	assert.InDelta(t, 1.0, confidence, 0.01)

	_, confidence = DetectHeuristic("plain english words")
	assert.Less(t, confidence, 0.5)
}
