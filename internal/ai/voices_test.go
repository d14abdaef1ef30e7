package ai

import "testing"

func TestResolveVoice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"rachel", "Rachel", "21m00Tcm4TlvDq8ikWAM"},
		{"bella", "Bella", "EXAVITQu4vr4xnSDxMaL"},
		{"ember", "Ember", "cgSgspJ2msm6clMCkdW9"},
		{"raw id passthrough", "21m00Tcm4TlvDq8ikWAM", "21m00Tcm4TlvDq8ikWAM"},
		{"unknown passthrough", "somebody", "somebody"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveVoice(tt.input); got != tt.want {
				t.Fatalf("got=%q want=%q", got, tt.want)
			}
		})
	}
}

func TestDefaultVoiceForTone(t *testing.T) {
	tests := []struct {
		tone   string
		want   string
		wantOK bool
	}{
		{"wise", "Rachel", true},
		{"humorous", "Bella", true},
		{"poetic", "Ember", true},
		{"calm", "", false},
		{"unknown_tone", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.tone, func(t *testing.T) {
			got, ok := DefaultVoiceForTone(tt.tone)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("got=%q ok=%v want=%q wantOK=%v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
