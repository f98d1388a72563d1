package translate

import (
	"encoding/json"
	"net/http"
	"text_trans_api/config"
	"text_trans_api/models/models"
	"text_trans_api/pkg/languages"
	"text_trans_api/pkg/llm"
	"text_trans_api/pkg/logger"
	responsex "text_trans_api/pkg/response"
)

// DetectLanguage handles POST /api/detect-language. The LLM is asked
// for an ISO 639-1 code; when that call fails outright the local
// character-class heuristic supplies a degraded-mode guess instead of
// an error.
func DetectLanguage(w http.ResponseWriter, r *http.Request) {
	var requestData models.DetectLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Invalid request body",
			Data: map[string]interface{}{},
		})
		return
	}

	if requestData.Text == "" {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Text cannot be empty",
			Data: map[string]interface{}{},
		})
		return
	}

	heuristicCode, confidence := languages.DetectHeuristic(requestData.Text)

	code, err := llm.Detect(r.Context(), requestData.Text)
	if err != nil {
		logger.Logger.Warn("model detection failed, using heuristic", "error", err.Error())
		code = heuristicCode
	} else if code == heuristicCode {
		confidence = 1.0
	} else {
		// Model result wins; the heuristic disagreeing just lowers
		// the confidence we report.
		confidence = 0.8
	}

	responsex.RespondWithJSON(w, http.StatusOK, models.Response{
		Code: http.StatusOK,
		Msg:  "Language detected successfully",
		Data: models.DetectLanguageData{
			DetectedLanguage: models.DetectedLanguage{
				Code:       code,
				Name:       config.LanguageName(code),
				Confidence: confidence,
			},
		},
	})
}
