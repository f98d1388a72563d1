package plan

import (
	"net/http"
	"text_trans_api/config"
	"text_trans_api/models/models"
	"text_trans_api/pkg/logger"
	responsex "text_trans_api/pkg/response"
	"text_trans_api/pkg/users"
	"text_trans_api/service/api/middleware/auth"
)

// CurrentPlan returns the static limits for the caller's plan.
func CurrentPlan(w http.ResponseWriter, r *http.Request) {
	userid := auth.GetUserIDFromContext(r)
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

	responsex.RespondWithJSON(w, http.StatusOK, models.Response{
		Code: http.StatusOK,
		Msg:  "Success",
		Data: config.GetPlan(user_info.Plan),
	})
}
