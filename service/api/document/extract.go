package document

import (
	"encoding/json"
	"errors"
	"net/http"
	"text_trans_api/models/models"
	"text_trans_api/pkg/extract"
	"text_trans_api/pkg/logger"
	responsex "text_trans_api/pkg/response"
)

// ExtractText handles POST /api/extract-text: fetch an uploaded file
// by URL and return its plain text.
func ExtractText(w http.ResponseWriter, r *http.Request) {
	var requestData models.ExtractTextRequest
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Invalid request format. Please check your request body.",
			Data: map[string]interface{}{},
		})
		return
	}

	if requestData.FileUrl == "" {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Please provide the file URL.",
			Data: map[string]interface{}{},
		})
		return
	}

	if !extract.IsSupportedType(requestData.FileType) {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Unsupported file type. Supported types: pdf, docx, txt.",
			Data: map[string]interface{}{},
		})
		return
	}

	text, err := extract.FromURL(r.Context(), requestData.FileUrl, requestData.FileType)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
				Code: http.StatusBadRequest,
				Msg:  "Unsupported file type. Supported types: pdf, docx, txt.",
				Data: map[string]interface{}{},
			})
			return
		}
		logger.Logger.Error("text extraction failed", "file_type", requestData.FileType, "error", err.Error())
		responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
			Code: http.StatusInternalServerError,
			Msg:  "Unable to extract text from the file. Please try again later.",
			Data: map[string]interface{}{},
		})
		return
	}

	responsex.RespondWithJSON(w, http.StatusOK, models.Response{
		Code: http.StatusOK,
		Msg:  "Success",
		Data: models.ExtractTextData{Text: text},
	})
}
