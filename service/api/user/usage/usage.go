package usage

import (
	"net/http"
	"text_trans_api/config"
	"text_trans_api/models/models"
	"text_trans_api/pkg/logger"
	"text_trans_api/pkg/quota"
	responsex "text_trans_api/pkg/response"
	"text_trans_api/pkg/users"
	"text_trans_api/service/api/middleware/auth"
)

// GetCurrentUsage reports today's request counter against the caller's
// plan limit.
func GetCurrentUsage(w http.ResponseWriter, r *http.Request) {
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

	used, err := quota.Used(r.Context(), userid)
	if err != nil {
		logger.Logger.Error("failed to read request counter", "userid", userid, "error", err.Error())
		responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
			Code: http.StatusInternalServerError,
			Msg:  "Internal server error. Please try again later.",
			Data: map[string]interface{}{},
		})
		return
	}

	plan := config.GetPlan(user_info.Plan)
	remaining := plan.RequestsPerDay - used
	if remaining < 0 {
		remaining = 0
	}

	responsex.RespondWithJSON(w, http.StatusOK, models.Response{
		Code: http.StatusOK,
		Msg:  "Success",
		Data: models.Usage{
			Limit:     plan.RequestsPerDay,
			Used:      used,
			Remaining: remaining,
		},
	})
}
