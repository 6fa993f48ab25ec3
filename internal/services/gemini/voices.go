package gemini

// Voice is a prebuilt TTS voice the API accepts by name.
type Voice struct {
	Name string
	Tone string
}

// voices lists the prebuilt voices with their short tone descriptions.
var voices = []Voice{
	{"Zephyr", "Bright"},
	{"Puck", "Upbeat"},
	{"Charon", "Informative"},
	{"Kore", "Firm"},
	{"Fenrir", "Excitable"},
	{"Leda", "Youthful"},
	{"Orus", "Firm"},
	{"Aoede", "Breezy"},
	{"Callirrhoe", "Easy-going"},
	{"Autonoe", "Bright"},
	{"Enceladus", "Breathy"},
	{"Iapetus", "Clear"},
	{"Umbriel", "Easy-going"},
	{"Algieba", "Smooth"},
	{"Despina", "Smooth"},
	{"Erinome", "Clear"},
	{"Algenib", "Gravelly"},
	{"Rasalgethi", "Informative"},
	{"Laomedeia", "Upbeat"},
	{"Achernar", "Soft"},
	{"Alnilam", "Firm"},
	{"Schedar", "Even"},
	{"Gacrux", "Mature"},
	{"Pulcherrima", "Forward"},
	{"Achird", "Friendly"},
	{"Zubenelgenubi", "Casual"},
	{"Vindemiatrix", "Gentle"},
	{"Sadachbia", "Lively"},
	{"Sadaltager", "Knowledgeable"},
	{"Sulafat", "Warm"},
}

// Voices returns the known prebuilt voices.
func Voices() []Voice {
	out := make([]Voice, len(voices))
	copy(out, voices)
	return out
}

// KnownVoice reports whether name matches a prebuilt voice exactly.
func KnownVoice(name string) bool {
	for _, v := range voices {
		if v.Name == name {
			return true
		}
	}
	return false
}
