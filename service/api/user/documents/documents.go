package documents

import (
	"net/http"
	"net/url"
	"text_trans_api/models/models"
	"text_trans_api/models/tables"
	"text_trans_api/pkg/logger"
	responsex "text_trans_api/pkg/response"
	"text_trans_api/pkg/supabase"
	"text_trans_api/service/api/middleware/auth"
)

// GetDocuments lists the caller's translated documents. Rows whose
// signed URL has expired are still listed; the URL simply stops
// working after 24 hours.
func GetDocuments(w http.ResponseWriter, r *http.Request) {
	queryParams := url.Values{}
	queryParams.Add("select", "*")
	queryParams.Add("user_id", "eq."+auth.GetUserIDFromContext(r))
	queryParams.Add("order", "create_time.desc")

	var documentList []tables.DocumentTranslation
	if err := supabase.SelectInto(r.Context(), "document_translations", queryParams, &documentList); err != nil {
		logger.Logger.Error("failed to fetch documents", "error", err.Error())
		responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
			Code: http.StatusInternalServerError,
			Msg:  "Internal server error. Please try again later.",
			Data: map[string]interface{}{},
		})
		return
	}

	if documentList == nil {
		documentList = []tables.DocumentTranslation{}
	}

	responsex.RespondWithJSON(w, http.StatusOK, models.Response{
		Code: http.StatusOK,
		Msg:  "Success",
		Data: documentList,
	})
}
