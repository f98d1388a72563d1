package models

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

type TranslateRequest struct {
	InputText      string `json:"inputText"`
	InputLanguage  string `json:"inputLanguage"`
	OutputLanguage string `json:"outputLanguage"`
	SaveHistory    bool   `json:"saveHistory"`
}

// TranslateData mirrors the public translate contract: the translated
// text plus the caller's daily quota arithmetic.
type TranslateData struct {
	Text      string `json:"text"`
	Limit     int    `json:"limit"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
}

type DetectLanguageRequest struct {
	Text string `json:"text"`
}

type DetectedLanguage struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type DetectLanguageData struct {
	DetectedLanguage DetectedLanguage `json:"detectedLanguage"`
}

type ExtractTextRequest struct {
	FileUrl  string `json:"fileUrl"`
	FileType string `json:"fileType"`
}

type ExtractTextData struct {
	Text string `json:"text"`
}

// DocxData is the captured structure of an uploaded DOCX: the raw body
// XML, position-aligned original/translated text nodes, and the other
// archive members keyed by name (media members base64-encoded).
type DocxData struct {
	DocumentXml     string            `json:"documentXml,omitempty"`
	OriginalNodes   []string          `json:"originalNodes,omitempty"`
	TranslatedNodes []string          `json:"translatedNodes,omitempty"`
	Files           map[string]string `json:"files,omitempty"`
	OriginalFile    []byte            `json:"originalFile,omitempty"`
}

type GenerateDocumentRequest struct {
	TranslatedText     string    `json:"translatedText"`
	OriginalFileName   string    `json:"originalFileName"`
	FileType           string    `json:"fileType"`
	SourceLanguage     string    `json:"sourceLanguage"`
	TargetLanguage     string    `json:"targetLanguage"`
	TranslatedDocxData *DocxData `json:"translatedDocxData,omitempty"`
}

type GenerateDocumentData struct {
	DocumentData string `json:"documentData"` // base64
	FileName     string `json:"fileName"`
	ContentType  string `json:"contentType"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Ip       string `json:"ip"`
}

type ProfileUpdateRequest struct {
	FullName           string `json:"full_name"`
	PreferredLanguage  string `json:"preferred_language"`
	AvatarUrl          string `json:"avatar_url"`
	Phone              string `json:"phone"`
	EmailNotifications *bool  `json:"email_notifications,omitempty"`
}

type DocumentJobRequest struct {
	StorageKey       string `json:"storageKey"`
	OriginalFileName string `json:"originalFileName"`
	FileType         string `json:"fileType"`
	FileSize         int64  `json:"fileSize"`
	SourceLanguage   string `json:"sourceLanguage"`
	TargetLanguage   string `json:"targetLanguage"`
}

type Usage struct {
	Limit     int `json:"limit"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}
