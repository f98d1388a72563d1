package translate

import (
	"encoding/json"
	"net/http"
	"strings"
	"text_trans_api/config"
	"text_trans_api/models/models"
	"text_trans_api/pkg/llm"
	"text_trans_api/pkg/logger"
	"text_trans_api/pkg/quota"
	responsex "text_trans_api/pkg/response"
	"text_trans_api/pkg/supabase"
	"text_trans_api/pkg/users"
	"text_trans_api/service/api/middleware/auth"
	"time"

	"github.com/google/uuid"
)

// TranslateOne handles POST /api/translate: field validation, per-plan
// character limit, daily request quota, the LLM call, and an optional
// history row for authenticated callers.
func TranslateOne(w http.ResponseWriter, r *http.Request) {
	var requestData models.TranslateRequest
	err := json.NewDecoder(r.Body).Decode(&requestData)
	if err != nil {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Invalid request format. Please check your request body.",
			Data: map[string]interface{}{},
		})
		return
	}

	if requestData.InputText == "" {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Please provide the text to translate.",
			Data: map[string]interface{}{},
		})
		return
	}

	if requestData.InputLanguage == "" {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Please specify the source language.",
			Data: map[string]interface{}{},
		})
		return
	}

	if requestData.OutputLanguage == "" {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Please specify the target language.",
			Data: map[string]interface{}{},
		})
		return
	}

	// Plan resolution: profile row for authenticated users, the guest
	// tier for IP-identified callers.
	plan := config.Plans[config.PlanGuest]
	userid := auth.GetUserIDFromContext(r)
	if userid != "" {
		user_info, err := users.EnsureUser(r.Context(), userid, auth.GetEmailFromContext(r))
		if err != nil {
			logger.Logger.Error("failed to resolve user", "userid", userid, "error", err.Error())
			responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
				Code: http.StatusInternalServerError,
				Msg:  "Internal server error. Please try again later.",
				Data: map[string]interface{}{},
			})
			return
		}
		plan = config.GetPlan(user_info.Plan)
	}

	if len([]rune(requestData.InputText)) > plan.CharLimit {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Text exceeds the character limit for your plan. Please shorten it or upgrade your plan.",
			Data: map[string]interface{}{},
		})
		return
	}

	identity := auth.GetIdentityFromContext(r)
	used, err := quota.Used(r.Context(), identity)
	if err != nil {
		logger.Logger.Error("failed to read request counter", "identity", identity, "error", err.Error())
		responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
			Code: http.StatusInternalServerError,
			Msg:  "Internal server error. Please try again later.",
			Data: map[string]interface{}{},
		})
		return
	}

	if used >= plan.RequestsPerDay {
		responsex.RespondWithJSON(w, http.StatusTooManyRequests, models.Response{
			Code: http.StatusTooManyRequests,
			Msg:  "Daily request limit reached. Please try again tomorrow or upgrade your plan.",
			Data: models.TranslateData{
				Limit:     plan.RequestsPerDay,
				Used:      used,
				Remaining: 0,
			},
		})
		return
	}

	translated, err := llm.Translate(r.Context(),
		config.LanguageName(requestData.InputLanguage),
		config.LanguageName(requestData.OutputLanguage),
		requestData.InputText)
	if err != nil {
		logger.Logger.Error("translation failed", "identity", identity, "error", err.Error())
		responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
			Code: http.StatusInternalServerError,
			Msg:  "Translation failed. Please try again later.",
			Data: map[string]interface{}{},
		})
		return
	}

	used, err = quota.Consume(r.Context(), identity)
	if err != nil {
		logger.Logger.Error("failed to increment request counter", "identity", identity, "error", err.Error())
		responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
			Code: http.StatusInternalServerError,
			Msg:  "Internal server error. Please try again later.",
			Data: map[string]interface{}{},
		})
		return
	}

	if requestData.SaveHistory && userid != "" {
		historyRow := map[string]interface{}{
			"id":              uuid.New().String(),
			"user_id":         userid,
			"source_language": config.LanguageName(requestData.InputLanguage),
			"target_language": config.LanguageName(requestData.OutputLanguage),
			"source_text":     requestData.InputText,
			"translated_text": translated,
			"word_count":      len(strings.Fields(requestData.InputText)),
			"create_time":     time.Now().UTC().Format(time.RFC3339),
		}
		if err := supabase.Insert(r.Context(), "translation_history", historyRow); err != nil {
			logger.Logger.Error("failed to save history", "userid", userid, "error", err.Error())
			responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
				Code: http.StatusInternalServerError,
				Msg:  "Unable to save translation history. Please try again later.",
				Data: map[string]interface{}{},
			})
			return
		}
	}

	responsex.RespondWithJSON(w, http.StatusOK, models.Response{
		Code: http.StatusOK,
		Msg:  "Success",
		Data: models.TranslateData{
			Text:      translated,
			Limit:     plan.RequestsPerDay,
			Used:      used,
			Remaining: plan.RequestsPerDay - used,
		},
	})
}
