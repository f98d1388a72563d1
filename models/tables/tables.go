package tables

// Row shapes for the Supabase tables this service reads and writes.
// The rows are owned by the hosted platform; these structs only mirror
// the REST payloads.

type User struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	FullName           string `json:"full_name"`
	PreferredLanguage  string `json:"preferred_language"`
	Plan               string `json:"plan"`
	EmailNotifications bool   `json:"email_notifications"`
	AvatarUrl          string `json:"avatar_url"`
	Phone              string `json:"phone"`
	CreatedTime        string `json:"create_time"`
	UpdateTime         string `json:"update_time"`
}

type TranslationHistory struct {
	ID             string `json:"id"`
	Userid         string `json:"user_id"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
	SourceText     string `json:"source_text"`
	TranslatedText string `json:"translated_text"`
	WordCount      int    `json:"word_count"`
	CreatedTime    string `json:"create_time"`
}

type DocumentTranslation struct {
	ID             string `json:"id"`
	Userid         string `json:"user_id"`
	DocumentName   string `json:"document_name"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
	FileSize       int64  `json:"file_size"`
	SignedUrl      string `json:"signed_url"`
	CreatedTime    string `json:"create_time"`
	ExpiresAt      string `json:"expires_at"`
}

// DocumentTranslationJob tracks the async pipeline. Status moves
// pending -> extracting -> translating -> generating -> completed,
// or to failed with the error recorded.
type DocumentTranslationJob struct {
	ID               string `json:"id"`
	Userid           string `json:"user_id"`
	StorageKey       string `json:"storage_key"`
	OriginalFileName string `json:"original_file_name"`
	FileType         string `json:"file_type"`
	FileSize         int64  `json:"file_size"`
	SourceLanguage   string `json:"source_language"`
	TargetLanguage   string `json:"target_language"`
	Status           string `json:"status"`
	Error            string `json:"error"`
	ResultId         string `json:"result_id"`
	CreatedTime      string `json:"create_time"`
	UpdateTime       string `json:"update_time"`
}

type UserSignup struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Ip          string `json:"ip"`
	CreatedTime string `json:"create_time"`
}
