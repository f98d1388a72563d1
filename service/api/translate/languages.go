package translate

import (
	"net/http"
	"text_trans_api/config"
	"text_trans_api/models/models"
	responsex "text_trans_api/pkg/response"
)

type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type LanguagesResponse struct {
	Languages []Language `json:"languages"`
	Total     int        `json:"total"`
}

func GetSupportedLanguages(w http.ResponseWriter, r *http.Request) {
	languageList := make([]Language, len(config.SupportedLanguages))
	for i, lang := range config.SupportedLanguages {
		languageList[i] = Language{
			Code: lang.Code,
			Name: lang.Name,
		}
	}

	responsex.RespondWithJSON(w, http.StatusOK, models.Response{
		Code: http.StatusOK,
		Msg:  "Languages retrieved successfully",
		Data: LanguagesResponse{
			Languages: languageList,
			Total:     len(languageList),
		},
	})
}
