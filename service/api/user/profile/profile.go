package profile

import (
	"encoding/json"
	"net/http"
	"text_trans_api/models/models"
	"text_trans_api/pkg/logger"
	responsex "text_trans_api/pkg/response"
	"text_trans_api/pkg/users"
	"text_trans_api/service/api/middleware/auth"
)

// GetProfile returns the caller's profile row, creating it on the
// first authenticated request.
func GetProfile(w http.ResponseWriter, r *http.Request) {
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
		Data: user_info,
	})
}

// UpdateProfile patches the editable profile fields.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var requestData models.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Invalid request format. Please check your request body.",
			Data: map[string]interface{}{},
		})
		return
	}

	fields := map[string]interface{}{}
	if requestData.FullName != "" {
		fields["full_name"] = requestData.FullName
	}
	if requestData.PreferredLanguage != "" {
		fields["preferred_language"] = requestData.PreferredLanguage
	}
	if requestData.AvatarUrl != "" {
		fields["avatar_url"] = requestData.AvatarUrl
	}
	if requestData.Phone != "" {
		fields["phone"] = requestData.Phone
	}
	if requestData.EmailNotifications != nil {
		fields["email_notifications"] = *requestData.EmailNotifications
	}

	if len(fields) == 0 {
		responsex.RespondWithJSON(w, http.StatusBadRequest, models.Response{
			Code: http.StatusBadRequest,
			Msg:  "Nothing to update.",
			Data: map[string]interface{}{},
		})
		return
	}

	userid := auth.GetUserIDFromContext(r)
	if err := users.UpdateUser(r.Context(), userid, fields); err != nil {
		logger.Logger.Error("failed to update user", "userid", userid, "error", err.Error())
		responsex.RespondWithJSON(w, http.StatusInternalServerError, models.Response{
			Code: http.StatusInternalServerError,
			Msg:  "Unable to update profile. Please try again later.",
			Data: map[string]interface{}{},
		})
		return
	}

	responsex.RespondWithJSON(w, http.StatusOK, models.Response{
		Code: http.StatusOK,
		Msg:  "Profile updated successfully",
		Data: map[string]interface{}{},
	})
}
