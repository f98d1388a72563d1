package config

type SupportedLanguage struct {
	Code string
	Name string
}

var SupportedLanguages = []SupportedLanguage{
	{Code: "en", Name: "English"},
	{Code: "es", Name: "Spanish"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "it", Name: "Italian"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "nl", Name: "Dutch"},
	{Code: "pl", Name: "Polish"},
	{Code: "ru", Name: "Russian"},
	{Code: "uk", Name: "Ukrainian"},
	{Code: "ar", Name: "Arabic"},
	{Code: "he", Name: "Hebrew"},
	{Code: "hi", Name: "Hindi"},
	{Code: "th", Name: "Thai"},
	{Code: "vi", Name: "Vietnamese"},
	{Code: "id", Name: "Indonesian"},
	{Code: "tr", Name: "Turkish"},
	{Code: "el", Name: "Greek"},
	{Code: "ja", Name: "Japanese"},
	{Code: "ko", Name: "Korean"},
	{Code: "zh", Name: "Chinese"},
}

func IsLanguageSupported(code string) bool {
	for _, lang := range SupportedLanguages {
		if lang.Code == code {
			return true
		}
	}
	return false
}

// LanguageName maps an ISO 639-1 code to its display name. Unknown
// codes come back as-is so the caller always has something to show.
func LanguageName(code string) string {
	for _, lang := range SupportedLanguages {
		if lang.Code == code {
			return lang.Name
		}
	}
	return code
}
