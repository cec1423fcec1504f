package cefr

// languageNames maps ISO 639-1 codes to English language names for prompts.
var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"zh": "Chinese",
	"ja": "Japanese",
	"he": "Hebrew",
	"hi": "Hindi",
	"el": "Greek",
	"pl": "Polish",
	"nl": "Dutch",
}

// LanguageName returns the English name for a language code, or the code
// itself when unknown (the prompt degrades gracefully).
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// KnownLanguage reports whether the code has a name mapping.
func KnownLanguage(code string) bool {
	_, ok := languageNames[code]
	return ok
}
