package ai

// Voice is a named entry in the speech-synthesis catalog. Personalities store
// the voice name; the provider id is resolved only at synthesis time.
type Voice struct {
	Name        string `json:"name"`
	ProviderID  string `json:"voice_id"`
	Description string `json:"description"`
}

var voiceCatalog = []Voice{
	{
		Name:        "Rachel",
		ProviderID:  "21m00Tcm4TlvDq8ikWAM",
		Description: "Warm, friendly, natural - good for all tones",
	},
	{
		Name:        "Bella",
		ProviderID:  "EXAVITQu4vr4xnSDxMaL",
		Description: "Cute, youthful - great for playful or humorous trees",
	},
	{
		Name:        "Ember",
		ProviderID:  "cgSgspJ2msm6clMCkdW9",
		Description: "Warm and engaging - good for wise or poetic trees",
	},
}

// Voices returns the catalog of selectable voices.
func Voices() []Voice {
	out := make([]Voice, len(voiceCatalog))
	copy(out, voiceCatalog)
	return out
}

// ResolveVoice maps a voice name to its provider id. Unknown values are
// passed through unchanged so raw provider ids keep working.
func ResolveVoice(name string) string {
	for _, v := range voiceCatalog {
		if v.Name == name {
			return v.ProviderID
		}
	}
	return name
}

// KnownVoice reports whether name is in the catalog.
func KnownVoice(name string) bool {
	for _, v := range voiceCatalog {
		if v.Name == name {
			return true
		}
	}
	return false
}

var toneDefaultVoice = map[string]string{
	"wise":     "Rachel",
	"humorous": "Bella",
	"poetic":   "Ember",
}

// DefaultVoiceForTone returns the default voice name for a tone, if the tone
// has one. Tones without a default require an explicit voice selection.
func DefaultVoiceForTone(tone string) (string, bool) {
	v, ok := toneDefaultVoice[tone]
	return v, ok
}
