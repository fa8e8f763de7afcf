package speech

import (
	"strings"
	"testing"
)

func TestAudioMIME(t *testing.T) {
	cases := map[string]string{
		"memo.MP3":  "audio/mp3",
		"memo.ogg":  "audio/ogg",
		"memo.m4a":  "audio/aac",
		"memo.flac": "audio/flac",
		"memo.webm": "audio/webm",
		"memo":      "audio/wav",
	}
	for path, want := range cases {
		if got := audioMIME(path); got != want {
			t.Errorf("audioMIME(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestTranscriptionPrompt(t *testing.T) {
	if !strings.Contains(transcriptionPrompt(""), DefaultLanguage) {
		t.Error("prompt should fall back to the default language")
	}
	if !strings.Contains(transcriptionPrompt("en-US"), "en-US") {
		t.Error("prompt should mention the configured language")
	}
}

func TestGemini_UnavailableWithoutAudio(t *testing.T) {
	var g *Gemini
	if g.Available() {
		t.Error("nil recognizer must not be available")
	}
	g = &Gemini{audioPath: "/does/not/exist.wav"}
	if g.Available() {
		t.Error("recognizer without client must not be available")
	}
}
