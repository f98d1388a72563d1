package history

import (
	"net/http"
	"net/url"
	"strings"
	"text_trans_api/models/models"
	"text_trans_api/models/tables"
	"text_trans_api/pkg/logger"
	responsex "text_trans_api/pkg/response"
	"text_trans_api/pkg/supabase"
	"text_trans_api/service/api/middleware/auth"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

// GetHistory lists the caller's saved translations, newest first.
func GetHistory(w http.ResponseWriter, r *http.Request) {
	queryParams := url.Values{}
	queryParams.Add("select", "*")
	queryParams.Add("user_id", "eq."+auth.GetUserIDFromContext(r))
	queryParams.Add("order", "create_time.desc")

	var historyList []tables.TranslationHistory
	if err := supabase.SelectInto(r.Context(), "translation_history", queryParams, &historyList); err != nil {
		logger.Logger.Error("failed to fetch history", "error", err.Error())
		responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
			Code: http.StatusInternalServerError,
			Msg:  "Internal server error. Please try again later.",
			Data: map[string]interface{}{},
		})
		return
	}

	if historyList == nil {
		historyList = []tables.TranslationHistory{}
	}

	responsex.RespondWithJSON(w, http.StatusOK, models.Response{
		Code: http.StatusOK,
		Msg:  "Success",
		Data: historyList,
	})
}

// DeleteById removes one history row owned by the caller. History rows
// are immutable once created except for deletion.
func DeleteById(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "ID is missing in the request",
			Data: map[string]interface{}{},
		})
		return
	}

	if _, err := uuid.Parse(id); err != nil {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Invalid ID format",
			Data: map[string]interface{}{},
		})
		return
	}

	queryParams := url.Values{}
	queryParams.Add("id", "eq."+id)
	queryParams.Add("user_id", "eq."+auth.GetUserIDFromContext(r))

	if err := supabase.Delete(r.Context(), "translation_history", queryParams); err != nil {
		logger.Logger.Error("failed to delete history row", "id", id, "error", err.Error())
		responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
			Code: http.StatusInternalServerError,
			Msg:  "Unexpected error occurred while deleting record",
			Data: map[string]interface{}{},
		})
		return
	}

	responsex.RespondWithJSON(w, http.StatusOK, models.Response{
		Code: http.StatusOK,
		Msg:  "Record deleted successfully",
		Data: map[string]interface{}{},
	})
}
