package document

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"text_trans_api/models/models"
	"text_trans_api/pkg/docx"
	responsex "text_trans_api/pkg/response"
)

// GenerateDocument handles POST /api/generate-document: re-serialize
// translated text into a downloadable document. docx output goes
// through the formatting-preserving patcher when the captured
// structure is supplied, otherwise degrades to a plain document; pdf
// input is downgraded to a txt result; txt passes through.
func GenerateDocument(w http.ResponseWriter, r *http.Request) {
	var requestData models.GenerateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Invalid request format. Please check your request body.",
			Data: map[string]interface{}{},
		})
		return
	}

	if requestData.TranslatedText == "" {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Please provide the translated text.",
			Data: map[string]interface{}{},
		})
		return
	}

	var documentBytes []byte
	var fileName, contentType string

	switch requestData.FileType {
	case "docx":
		if requestData.TranslatedDocxData != nil {
			documentBytes = docx.Build(requestData.TranslatedText, requestData.TranslatedDocxData)
		} else {
			documentBytes = docx.GeneratePlain(requestData.TranslatedText)
		}
		fileName = outputFileName(requestData.OriginalFileName, "docx")
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "pdf", "txt":
		documentBytes = []byte(requestData.TranslatedText)
		fileName = outputFileName(requestData.OriginalFileName, "txt")
		contentType = "text/plain; charset=utf-8"
	default:
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Unsupported file type. Supported types: pdf, docx, txt.",
			Data: map[string]interface{}{},
		})
		return
	}

	responsex.RespondWithJSON(w, http.StatusOK, models.Response{
		Code: http.StatusOK,
		Msg:  "Success",
		Data: models.GenerateDocumentData{
			DocumentData: base64.StdEncoding.EncodeToString(documentBytes),
			FileName:     fileName,
			ContentType:  contentType,
		},
	})
}

func outputFileName(original string, ext string) string {
	base := original
	if base == "" {
		base = "document"
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return fmt.Sprintf("translated-%s.%s", base, ext)
}
